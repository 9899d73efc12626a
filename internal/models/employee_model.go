package models

import "time"

// Sexo (valores canônicos armazenados)
const (
	SexMasculine = "masculino"
	SexFeminine  = "feminino"
)

type Employee struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" bson:"_id"`
	CPF         string    `gorm:"column:cpf;size:14;not null;uniqueIndex" bson:"cpf"` // formato 000.000.000-00
	Name        string    `gorm:"size:200;not null" bson:"name"`
	SocialName  string    `gorm:"size:200" bson:"social_name,omitempty"`
	BirthDate   time.Time `gorm:"type:date;not null" bson:"birth_date"`
	RaceColor   string    `gorm:"size:20;not null" bson:"race_color"`
	Sex         string    `gorm:"size:10;not null" bson:"sex"`
	Nationality string    `gorm:"size:50;not null" bson:"nationality"`
	BirthState  string    `gorm:"size:2;not null" bson:"birth_state"`
	BirthCity   string    `gorm:"size:100;not null" bson:"birth_city"`
	Phone       string    `gorm:"size:15;not null" bson:"phone"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false;not null" bson:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false;not null" bson:"updated_at"`
}
