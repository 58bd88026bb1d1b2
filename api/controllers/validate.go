package controllers

import pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"

func validationError(err error, msg string) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, msg).WithDetails(map[string]string{"error": err.Error()})
}
