package model

import (
	"time"
)

type VipPackage struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Level         int       `gorm:"uniqueIndex;not null" json:"level"`
	Name          string    `gorm:"size:50;not null" json:"name"`
	InvestmentBs  float64   `gorm:"type:decimal(12,2);not null" json:"investment_bs"`
	DailyProfitBs float64   `gorm:"type:decimal(12,2);not null" json:"daily_profit_bs"`
	Enabled       bool      `gorm:"default:true" json:"enabled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (VipPackage) TableName() string {
	return "vip_packages"
}
