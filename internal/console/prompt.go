package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JonMunkholm/vendors/internal/core"
)

const (
	msgAskID        = "Ingrese el id"
	msgAskName      = "Ingrese el nombre"
	msgAskBirthDate = "Ingrese la fecha de nacimiento en formato %s"
	msgAskRegion    = "Ingrese un estado"

	msgNotInteger     = "Error. Esta opcion solo acepta un numero entero."
	msgBadDateFormat  = "Error. La fecha %s no tiene el formato %s"
	msgImpossibleDate = "Error. La cadena %s no puede interpretarse con el patron de fecha %s porque representa una fecha imposible"

	// MsgAborting is printed before the CLI exits on bad input.
	MsgAborting = "Error. Cerrando app... app finalizada"
)

// Answers holds prefilled vendor fields. Empty fields are prompted for.
type Answers struct {
	ID        string
	Name      string
	BirthDate string
	Region    string
}

// Prompter asks the user for vendor fields one line at a time.
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	pattern core.DatePattern
}

// NewPrompter reads answers from r and writes prompts to w. Birth dates
// are parsed with pattern.
func NewPrompter(r io.Reader, w io.Writer, pattern core.DatePattern) *Prompter {
	return &Prompter{in: bufio.NewReader(r), out: w, pattern: pattern}
}

// ReadVendor prompts for the fields missing from prefill, in the order
// id, name, birth date, region, and stops at the first invalid answer.
func (p *Prompter) ReadVendor(service *core.Service, prefill Answers) (core.Vendor, error) {
	idText, err := p.ask(prefill.ID, msgAskID)
	if err != nil {
		return core.Vendor{}, err
	}
	id, err := strconv.Atoi(idText)
	if err != nil {
		return core.Vendor{}, fmt.Errorf("%w: %q", core.ErrMalformedIdentifier, idText)
	}

	name, err := p.ask(prefill.Name, msgAskName)
	if err != nil {
		return core.Vendor{}, err
	}

	birthDate, err := p.ask(prefill.BirthDate, fmt.Sprintf(msgAskBirthDate, p.pattern))
	if err != nil {
		return core.Vendor{}, err
	}
	if _, err := core.ParseDate(birthDate, p.pattern); err != nil {
		return core.Vendor{}, &inputError{text: birthDate, pattern: p.pattern, err: err}
	}

	region, err := p.ask(prefill.Region, msgAskRegion)
	if err != nil {
		return core.Vendor{}, err
	}

	return service.CaptureVendor(id, name, birthDate, region, p.pattern)
}

func (p *Prompter) ask(prefilled, prompt string) (string, error) {
	if prefilled != "" {
		return prefilled, nil
	}
	fmt.Fprintln(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// inputError remembers the rejected date text so the message can quote it.
type inputError struct {
	text    string
	pattern core.DatePattern
	err     error
}

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

// InputErrorMessage returns the console message for a rejected answer.
func InputErrorMessage(err error) string {
	var in *inputError
	if errors.As(err, &in) {
		if errors.Is(err, core.ErrImpossibleDate) {
			return fmt.Sprintf(msgImpossibleDate, in.text, in.pattern)
		}
		return fmt.Sprintf(msgBadDateFormat, in.text, in.pattern)
	}
	if errors.Is(err, core.ErrMalformedIdentifier) {
		return msgNotInteger
	}
	return "Error. " + core.FormatUserError(err)
}
