package model

import "time"

// Student represents a student account.
type Student struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	TargetExam   string    `json:"target_exam"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// StudentLoginResponse is returned after successful student login.
type StudentLoginResponse struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
}

// CreateStudentRequest is the payload for registering a student account.
type CreateStudentRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required,min=2,max=100"`
	TargetExam string `json:"target_exam" binding:"required,min=2,max=32"`
	Password   string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateStudentRequest is the payload for updating an existing student.
type UpdateStudentRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Name       string `json:"name" binding:"required,min=2,max=100"`
	TargetExam string `json:"target_exam" binding:"required,min=2,max=32"`
	Password   string `json:"password" binding:"omitempty,min=6,max=128"`
}
