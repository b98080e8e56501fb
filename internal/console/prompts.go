package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/ticketmaster/internal/domain"
	appvalidator "github.com/metinatakli/ticketmaster/internal/validator"
)

const dateLayout = "2006-01-02"

// readField re-prompts until the line satisfies the validator tag.
func (m *Menu) readField(prompt, tag string) (string, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return "", err
		}

		err = m.validator.Var(line, tag)
		if err == nil {
			return line, nil
		}

		m.invalid(err)
	}
}

// readInt re-prompts until the line is an integer no smaller than least.
func (m *Menu) readInt(prompt string, least int) (int, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err == nil && n >= least {
			return n, nil
		}

		fmt.Fprintln(m.out, invalidInput)
	}
}

// readIntOr is readInt where an empty line selects def.
func (m *Menu) readIntOr(prompt string, def int) (int, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}

		if line == "" {
			return def, nil
		}

		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}

		fmt.Fprintln(m.out, invalidInput)
	}
}

func (m *Menu) readDate(prompt string) (string, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return "", err
		}

		if _, err := time.Parse(dateLayout, line); err == nil {
			return line, nil
		}

		fmt.Fprintln(m.out, invalidInput, "Expected yyyy-mm-dd.")
	}
}

func (m *Menu) readClock(prompt string) (string, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return "", err
		}

		if _, err := appvalidator.ParseClock(line); err == nil {
			return line, nil
		}

		fmt.Fprintln(m.out, invalidInput, "Expected hh:mm or hh:mm:ss.")
	}
}

// readStatus re-prompts until the line names a status a booking may be
// created with, ignoring case.
func (m *Menu) readStatus() (string, error) {
	prompt := "Paid or Pending: "

	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return "", err
		}

		status, err := domain.ParseNewBookingStatus(line)
		if err == nil {
			return string(status), nil
		}

		prompt = "Invalid choice.\nPaid or Pending: "
	}
}

// readIDs re-prompts until the line is a comma or space separated list of
// positive integers.
func (m *Menu) readIDs(prompt string) ([]int, error) {
	for {
		line, err := m.readLine(prompt)
		if err != nil {
			return nil, err
		}

		ids, ok := parseIDs(line)
		if ok {
			return ids, nil
		}

		fmt.Fprintln(m.out, invalidInput)
	}
}

func parseIDs(line string) ([]int, bool) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if len(fields) == 0 {
		return nil, false
	}

	ids := make([]int, 0, len(fields))
	for _, field := range fields {
		id, err := strconv.Atoi(field)
		if err != nil || id < 1 {
			return nil, false
		}
		ids = append(ids, id)
	}

	return ids, true
}

func (m *Menu) invalid(err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fmt.Fprintln(m.out, invalidInput, "Value", appvalidator.ValidationMessage(validationErrors[0])+".")
		return
	}

	fmt.Fprintln(m.out, invalidInput)
}
