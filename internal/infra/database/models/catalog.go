package models

type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" gorm:"type:varchar(150);uniqueIndex;not null"`
	Color string `json:"color" gorm:"type:varchar(7);uniqueIndex;not null"`
	Slug  string `json:"slug" gorm:"type:varchar(150);not null"`
}

type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string `json:"name" gorm:"type:varchar(150);uniqueIndex;not null"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(25);not null"`
}
