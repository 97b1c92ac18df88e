package models

import (
	"time"
)

// Project is a portfolio project with its gallery media.
type Project struct {
	ID          string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	StartTime   *string    `gorm:"type:varchar(10)" json:"startTime"`
	EndTime     *string    `gorm:"type:varchar(10)" json:"endTime"`
	Skills      StringList `gorm:"type:text" json:"skills"`
	Link        *string    `gorm:"type:text" json:"link"`
	Description *string    `gorm:"type:text" json:"description"`
	Media       StringList `gorm:"type:text" json:"media"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Project) TableName() string {
	return "projects"
}

// Professional is an entry of the professional history.
type Professional struct {
	ID          string     `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	StartTime   *string    `gorm:"type:varchar(10)" json:"startTime"`
	EndTime     *string    `gorm:"type:varchar(10)" json:"endTime"`
	Skills      StringList `gorm:"type:text" json:"skills"`
	Company     *string    `gorm:"type:varchar(255)" json:"company"`
	Description *string    `gorm:"type:text" json:"description"`
	Media       StringList `gorm:"type:text" json:"media"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Professional) TableName() string {
	return "professionals"
}

// Slide is one entry of the home page slideshow.
type Slide struct {
	ID        string     `gorm:"primaryKey;type:varchar(255)" json:"id"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Caption   *string    `gorm:"type:text" json:"caption"`
	Media     StringList `gorm:"type:text" json:"media"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Slide) TableName() string {
	return "slides"
}

// Admin is an account allowed into the admin panel.
type Admin struct {
	Account   string    `gorm:"primaryKey;type:varchar(255)" json:"account"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Admin) TableName() string {
	return "admins"
}

// HomeWord is the headline shown above the slideshow.
type HomeWord struct {
	ID          string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title" validate:"notblank"`
	Description string `gorm:"type:text;not null" json:"description" validate:"notblank"`
}

func (HomeWord) TableName() string {
	return "home_words"
}

// ExperienceWord is the introduction of the experiences page.
type ExperienceWord struct {
	ID          string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title" validate:"notblank"`
	Description string `gorm:"type:text;not null" json:"description" validate:"notblank"`
}

func (ExperienceWord) TableName() string {
	return "experience_words"
}

// About holds the about page sections.
type About struct {
	ID          string `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Information string `gorm:"type:text;not null" json:"information" validate:"notblank"`
	Skills      string `gorm:"type:text;not null" json:"skills" validate:"notblank"`
	Education   string `gorm:"type:text;not null" json:"education" validate:"notblank"`
}

func (About) TableName() string {
	return "about"
}

// Contact holds the contact page details.
type Contact struct {
	ID       string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Phone    string  `gorm:"type:varchar(64);not null" json:"phone" validate:"notblank"`
	Email    string  `gorm:"type:varchar(255);not null" json:"email" validate:"notblank,email"`
	LinkedIn *string `gorm:"column:linkedin;type:text" json:"linkedin"`
	GitHub   *string `gorm:"column:github;type:text" json:"github"`
}

func (Contact) TableName() string {
	return "contact"
}

// All lists every model for AutoMigrate and data copies.
func All() []any {
	return []any{
		&Project{},
		&Professional{},
		&Slide{},
		&Admin{},
		&HomeWord{},
		&ExperienceWord{},
		&About{},
		&Contact{},
	}
}
