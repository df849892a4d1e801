package testutil

import "github.com/dalemusser/employeehub/internal/domain/models"

// SampleEmployees returns a small, deterministic employee collection.
func SampleEmployees() []models.Employee {
	return []models.Employee{
		{ID: 1, FirstName: "John", LastName: "Doe", DateOfBirth: "1990-01-01", DateOfEmployment: "2023-01-01", Phone: "1234567890", Email: "john@example.com", Department: "1", Position: "2"},
		{ID: 2, FirstName: "Jane", LastName: "Smith", DateOfBirth: "1992-01-01", DateOfEmployment: "2023-02-01", Phone: "0987654321", Email: "jane@example.com", Department: "2", Position: "3"},
		{ID: 3, FirstName: "Ahmet", LastName: "Yılmaz", DateOfBirth: "1988-05-14", DateOfEmployment: "2020-09-01", Phone: "+90 532 111 22 33", Email: "ahmet.yilmaz@example.com", Department: "2", Position: "1"},
		{ID: 4, FirstName: "Ayşe", LastName: "Kaya", DateOfBirth: "1995-11-30", DateOfEmployment: "2022-03-15", Phone: "+90 533 444 55 66", Email: "ayse.kaya@example.com", Department: "1", Position: "3"},
		{ID: 5, FirstName: "John", LastName: "Smith", DateOfBirth: "1985-07-07", DateOfEmployment: "2019-06-01", Phone: "555 010 0199", Email: "jsmith@example.com", Department: "2", Position: "2"},
	}
}
