package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jacksmith/pb/internal/model"
	"gopkg.in/yaml.v3"
)

// EditInEditor opens content in $EDITOR and returns modified content.
// The suffix is used for the temporary file (e.g., ".yaml" for syntax highlighting).
// Returns error if EDITOR/VISUAL not set or editor exits non-zero.
func EditInEditor(content []byte, suffix string) ([]byte, error) {
	editor := getEditor()
	if editor == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or pass <field> <value> instead of -i")
	}

	tmpFile, err := os.CreateTemp("", "pb-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := runEditor(editor, tmpPath); err != nil {
		return nil, err
	}

	result, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return result, nil
}

// EditContact opens c as YAML in $EDITOR and returns the edited contact
// along with the fields whose values changed, in menu order.
func EditContact(id model.ID, c model.Contact) (model.Contact, []model.Field, error) {
	content, err := MarshalContactYAML(id, c)
	if err != nil {
		return c, nil, err
	}

	edited, err := EditInEditor(content, ".yaml")
	if err != nil {
		return c, nil, err
	}

	updated, err := UnmarshalContactYAML(edited)
	if err != nil {
		return c, nil, err
	}

	var changed []model.Field
	for _, f := range model.Fields {
		if updated.Get(f) != c.Get(f) {
			changed = append(changed, f)
		}
	}
	return updated, changed, nil
}

// MarshalContactYAML renders c as an editable YAML document with a header
// comment naming the contact.
func MarshalContactYAML(id model.ID, c model.Contact) ([]byte, error) {
	body, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal contact: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# Editing contact %s\n", id)
	buf.WriteString("# Save and close editor to apply changes. Exit without saving to cancel.\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// UnmarshalContactYAML parses an edited contact. Unknown keys are rejected
// so a typo does not silently drop a change.
func UnmarshalContactYAML(data []byte) (model.Contact, error) {
	var c model.Contact
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return model.Contact{}, fmt.Errorf("invalid YAML: %w", err)
	}
	return c, nil
}

// getEditor returns the editor command from environment.
// Checks VISUAL first (for graphical editors), then EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// runEditor executes the editor with the given file path.
func runEditor(editor, path string) error {
	// Split editor into command and args (e.g., "code --wait")
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	args := append(parts[1:], path)
	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
