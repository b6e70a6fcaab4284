package model

import "time"

// DefaultLevel is stored when a course arrives without a level.
const DefaultLevel = "Beginner"

// Course represents an educational offering in the catalog.
type Course struct {
	ID              int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title           string    `json:"title" gorm:"type:varchar(200);not null"`
	Description     string    `json:"description" gorm:"type:varchar(1000);not null"`
	Price           float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	DurationInHours int       `json:"duration_in_hours" gorm:"not null"`
	Level           string    `json:"level" gorm:"type:varchar(50);not null;default:Beginner"`
	Category        string    `json:"category" gorm:"type:varchar(50);not null"`
	IsPublished     bool      `json:"is_published" gorm:"not null;default:false"`
	CreatedAt       time.Time `json:"created_at" gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"not null;autoUpdateTime:false"`
	InstructorID    int       `json:"instructor_id" gorm:"not null;default:0"`
}

// TableName pins the table name shared with the SQL migrations.
func (Course) TableName() string {
	return "courses"
}

// CourseRequest is the payload for creating or updating a course.
// ID is ignored on create and must match the path id on update.
type CourseRequest struct {
	ID              int     `json:"id"`
	Title           string  `json:"title" binding:"required,max=200"`
	Description     string  `json:"description" binding:"required,max=1000"`
	Price           float64 `json:"price" binding:"gte=0,lte=5000"`
	DurationInHours int     `json:"duration_in_hours" binding:"gte=1,lte=10000"`
	Level           string  `json:"level" binding:"max=50"`
	Category        string  `json:"category" binding:"required,max=50"`
	IsPublished     bool    `json:"is_published"`
	InstructorID    int     `json:"instructor_id"`
}

// ToCourse copies the client-writable fields into a Course.
func (r *CourseRequest) ToCourse() *Course {
	return &Course{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		DurationInHours: r.DurationInHours,
		Level:           r.Level,
		Category:        r.Category,
		IsPublished:     r.IsPublished,
		InstructorID:    r.InstructorID,
	}
}

// CourseSample is the raw projection served by the diagnostics endpoint.
type CourseSample struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	IsPublished bool    `json:"is_published"`
}
