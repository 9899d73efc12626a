package repository

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateCPF     = errors.New("cpf already exists")
	ErrEmployeeNotFound = errors.New("referenced employee does not exist")
)
