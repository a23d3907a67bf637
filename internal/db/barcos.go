package db

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/AdolfoCB/almapac-gateway/storage"
)

// Barco is a vessel known to the port.
type Barco struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Nombre        string    `gorm:"uniqueIndex;not null" json:"nombre"`
	Bandera       string    `json:"bandera,omitempty"`
	Eslora        float64   `json:"eslora,omitempty"`
	ActualizadoEn time.Time `gorm:"autoUpdateTime" json:"actualizadoEn"`
}

func (Barco) TableName() string { return "barcos" }

// BarcoRepository reads vessels through gorm. Errors are classified into storage.Error.
type BarcoRepository struct {
	db *gorm.DB
}

func NewBarcoRepository(db *gorm.DB) *BarcoRepository {
	return &BarcoRepository{db: db}
}

func (r *BarcoRepository) ListBarcos(ctx context.Context) ([]Barco, error) {
	var out []Barco
	if err := r.db.WithContext(ctx).Order("nombre").Find(&out).Error; err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (r *BarcoRepository) GetBarco(ctx context.Context, id uint) (Barco, error) {
	var out Barco
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return Barco{}, classify(err)
	}
	return out, nil
}

// barcoModel is the entity name client messages use; drivers only report the table.
const barcoModel = "Barco"

func classify(err error) error {
	se, ok := storage.Classify(err)
	if !ok {
		return err
	}
	out := *se
	out.Meta.Model = barcoModel
	return &out
}
