package usecases

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"legal-city.backend/internal/domain/entities"
)

var digitRe = regexp.MustCompile(`\d`)

const passwordPolicyMessage = "Password must be at least 6 characters and include a number"

func passwordPolicy(value interface{}) error {
	s, _ := value.(string)
	if len(s) < 6 || !digitRe.MatchString(s) {
		return errors.New(passwordPolicyMessage)
	}
	return nil
}

// ValidatePassword checks the password policy shared by registration and reset
func ValidatePassword(password string) error {
	return passwordPolicy(password)
}

// ValidateRegistration validates a registration request for the given role and
// returns a field-keyed error map, or nil when the input is valid.
func ValidateRegistration(input *entities.RegisterInput, role entities.AccountRole) map[string]string {
	err := validation.Errors{
		"name": validation.Validate(strings.TrimSpace(input.Name),
			validation.Required.Error("Name must be at least 2 characters"),
			validation.Length(2, 100).Error("Name must be at least 2 characters")),
		"email": validation.Validate(input.Email,
			validation.Required.Error("Valid email is required"),
			is.Email.Error("Valid email is required")),
		"password": validation.Validate(input.Password, validation.By(passwordPolicy)),
		"role": validation.Validate(string(role),
			validation.In(string(entities.RoleUser), string(entities.RoleLawyer)).Error("Role must be user or lawyer")),
	}.Filter()

	fields := toFieldMap(err)

	if role == entities.RoleLawyer && strings.TrimSpace(input.RegistrationID) == "" {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["registration_id"] = "Registration ID is required for lawyers"
	}

	return fields
}

// ValidateLogin validates a login request. Either a well-formed email or a
// registration id must be supplied.
func ValidateLogin(input *entities.LoginInput) map[string]string {
	fields := make(map[string]string)

	emailErr := validation.Validate(input.Email, validation.Required, is.Email)
	if emailErr != nil && strings.TrimSpace(input.RegistrationID) == "" {
		fields["email"] = "Valid email or registration ID is required"
	}

	if input.Password == "" {
		fields["password"] = "Password is required"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ValidateProfileUpdate validates a profile overwrite
func ValidateProfileUpdate(input *entities.UpdateProfileInput) map[string]string {
	err := validation.Errors{
		"name": validation.Validate(strings.TrimSpace(input.Name),
			validation.Required.Error("Name must be at least 2 characters"),
			validation.Length(2, 100).Error("Name must be at least 2 characters")),
	}.Filter()
	return toFieldMap(err)
}

func toFieldMap(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		fields[field] = ferr.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
