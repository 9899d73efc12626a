package models

import "time"

// Tipos de contato (valores canônicos armazenados)
const (
	ContactEmail    = "email"
	ContactMobile   = "celular"
	ContactLandline = "telefone"
)

// Contact pertence a um único Employee; employee_id não muda depois da criação.
type Contact struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" bson:"_id"`
	EmployeeID  int64     `gorm:"not null;index" bson:"employee_id"`
	Type        string    `gorm:"size:20;not null" bson:"type"`
	Value       string    `gorm:"size:100;not null" bson:"value"`
	Description string    `gorm:"size:200" bson:"description,omitempty"`
	IsPrimary   bool      `gorm:"not null;default:false" bson:"is_primary"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null" bson:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false;not null" bson:"updated_at"`
}
