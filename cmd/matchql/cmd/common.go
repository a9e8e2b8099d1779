package cmd

import (
	"github.com/omniql-engine/matchql/internal/query"
)

func validateRaw(raw any) error {
	return query.Validate(raw)
}

func structuralFields(err error) (op, path, message string) {
	if se, ok := err.(*query.StructuralError); ok {
		return se.Op, se.Path, se.Message
	}
	return "validate", "", err.Error()
}
