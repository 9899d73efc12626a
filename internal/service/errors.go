package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ValidationError carrega uma mensagem por campo (chave = nome do campo no JSON).
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func notFound(resource, key string, value any) error {
	return fmt.Errorf("%w: %s with %s %v", ErrNotFound, resource, key, value)
}

func cpfConflict(cpf string) error {
	return fmt.Errorf("%w: cpf %s already registered", ErrConflict, cpf)
}
