package models

import "time"

// CollegeCourse links a course to a college that offers it.
type CollegeCourse struct {
	ID        string    `db:"id" json:"id"`
	CollegeID string    `db:"college_id" json:"college_id"`
	CourseID  string    `db:"course_id" json:"course_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CollegeCourseRequest creates a college-course link.
type CollegeCourseRequest struct {
	CollegeID string `json:"college_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}
