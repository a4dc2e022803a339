package repository

import (
	"gorm.io/gorm"

	"github.com/smarthogar/smarthogar-server/internal/model"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(pkg *model.VipPackage) error {
	return r.db.Create(pkg).Error
}

func (r *PackageRepository) GetByLevel(level int) (*model.VipPackage, error) {
	var pkg model.VipPackage
	err := r.db.Where("level = ?", level).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) ListEnabled() ([]model.VipPackage, error) {
	var pkgs []model.VipPackage
	err := r.db.Where("enabled = ?", true).Order("level asc").Find(&pkgs).Error
	return pkgs, err
}
