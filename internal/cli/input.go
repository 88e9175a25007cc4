package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// getSimpleText prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func getSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// getHiddenText prints a prompt to w and reads input from the terminal
// without echo. A newline is printed after the read to keep the UI tidy.
func getHiddenText(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// getPatchField prompts for a field edit. An empty line keeps the current
// value (absent from the patch); a single "-" overwrites with the empty
// string; anything else overwrites with the typed text.
func getPatchField(reader *bufio.Reader, name, current string, w io.Writer) (*string, error) {
	prompt := fmt.Sprintf("%s [%s] (Enter to keep, '-' to clear)", name, current)
	line, err := getSimpleText(reader, prompt, w)
	if err != nil {
		return nil, err
	}
	switch line {
	case "":
		return nil, nil
	case "-":
		empty := ""
		return &empty, nil
	default:
		return &line, nil
	}
}
