package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// ErrIncomplete is returned when a required field is blank.
var ErrIncomplete = errors.New("all fields must be filled")

// ValidationError carries the user-facing alert for a rejected form.
type ValidationError struct {
	Alert  string
	Fields []string
	err    error
}

func (e *ValidationError) Error() string { return e.Alert }
func (e *ValidationError) Unwrap() error { return e.err }

// ContestForm is the "create contest" modal.
type ContestForm struct {
	Name    string `validate:"required"`
	EndDate string `validate:"required,datetime=2006-01-02"`
	Prize   string `validate:"required"`
}

// Trimmed returns f with surrounding whitespace removed from every field.
func (f ContestForm) Trimmed() ContestForm {
	return ContestForm{
		Name:    strings.TrimSpace(f.Name),
		EndDate: strings.TrimSpace(f.EndDate),
		Prize:   strings.TrimSpace(f.Prize),
	}
}

// Validate checks the trimmed form and returns the parsed end date.
func (f ContestForm) Validate() (time.Time, error) {
	f = f.Trimmed()
	if err := check(f, "all fields must be filled"); err != nil {
		return time.Time{}, err
	}
	end, err := time.Parse(dateLayout, f.EndDate)
	if err != nil {
		return time.Time{}, &ValidationError{Alert: "end date must be YYYY-MM-DD", Fields: []string{"EndDate"}, err: err}
	}
	return end, nil
}

// AdminForm is the "add admin" modal. ChatLink is optional.
type AdminForm struct {
	TelegramID  string `validate:"required,numeric"`
	Username    string `validate:"required"`
	ChannelLink string `validate:"required"`
	ChatLink    string
}

func (f AdminForm) Trimmed() AdminForm {
	return AdminForm{
		TelegramID:  strings.TrimSpace(f.TelegramID),
		Username:    strings.TrimPrefix(strings.TrimSpace(f.Username), "@"),
		ChannelLink: strings.TrimSpace(f.ChannelLink),
		ChatLink:    strings.TrimSpace(f.ChatLink),
	}
}

// Validate checks the trimmed form and returns the parsed Telegram id.
func (f AdminForm) Validate() (int64, error) {
	f = f.Trimmed()
	if err := check(f, "fill in ID, username and channel link"); err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(f.TelegramID, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Alert: "ID must be a positive integer", Fields: []string{"TelegramID"}, err: err}
	}
	return id, nil
}

func check(form any, incompleteAlert string) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{err: err}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, fe.Field())
		if fe.Tag() == "required" {
			ve.Alert = incompleteAlert
			ve.err = ErrIncomplete
		}
	}
	if ve.Alert == "" {
		ve.Alert = fmt.Sprintf("invalid %s", strings.Join(ve.Fields, ", "))
	}
	return ve
}
