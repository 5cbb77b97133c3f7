// Package menu implements the interactive numbered-menu front end of pb.
//
// The menu owns no data. Every change goes through the Contacts interface,
// which *book.Book satisfies.
package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jacksmith/pb/internal/book"
	"github.com/jacksmith/pb/internal/cli"
	"github.com/jacksmith/pb/internal/model"
	"go.uber.org/zap"
)

// Contacts is the part of the contact store the menu drives.
type Contacts interface {
	Len() int
	List() []model.Entry
	Get(id model.ID) (model.Contact, error)
	Add(c model.Contact) (model.ID, error)
	Remove(id model.ID) error
	Edit(id model.ID, field model.Field, value string) error
	Search(criteria ...book.Criterion) ([]model.Entry, error)
}

// Options configures a Menu.
type Options struct {
	// PageSize is the number of contacts per page. Below 1 means
	// book.DefaultPageSize.
	PageSize int

	// Clear clears the screen after each answer when the output is a
	// terminal.
	Clear bool

	// Logger receives a debug line per command. Nil means no logging.
	Logger *zap.Logger
}

const (
	mainPrompt = "Choose an action:\n" +
		"1 - Show contacts\n" +
		"2 - Add contact\n" +
		"3 - Remove contact\n" +
		"4 - Edit contact\n" +
		"5 - Search contacts\n" +
		"0 - Exit\n" +
		"-> "

	pagerPrompt = "Choose an action:\n" +
		"1 - Next page\n" +
		"2 - Previous page\n" +
		"0 - Back to menu\n" +
		"-> "

	idPrompt = "Enter a contact ID, or\n" +
		"enter 0 to go back\n" +
		"-> "

	confirmPrompt = "Remove this contact?\n" +
		"1 - yes | 2 - no\n" +
		"-> "

	valuePrompt = "Enter the new value: "
)

// Notices shown between screens.
const (
	msgInvalidCommand = "Invalid command. Try again."
	msgNoContacts     = "The phone book is empty."
	msgNoSuchContact  = "No such contact. Try again."
	msgNoSuchPage     = "That page does not exist."
	msgNotFound       = "No contacts found."
	msgRemoved        = "Contact removed."
	msgUpdated        = "Contact updated."
)

// Menu runs the interactive loop over a contact store.
type Menu struct {
	contacts Contacts
	in       *cli.Prompter
	out      io.Writer
	pageSize int
	clear    bool
	log      *zap.Logger
}

// New returns a Menu reading commands from r and writing screens to w.
func New(contacts Contacts, r io.Reader, w io.Writer, opts Options) *Menu {
	m := &Menu{
		contacts: contacts,
		in:       cli.NewPrompter(r, w),
		out:      w,
		pageSize: opts.PageSize,
		clear:    opts.Clear,
		log:      opts.Logger,
	}
	if m.pageSize < 1 {
		m.pageSize = book.DefaultPageSize
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	return m
}

// Run shows the title and loops over the main menu until the user picks
// 0 or input ends. Only read failures are returned.
func (m *Menu) Run() error {
	m.clearScreen()
	fmt.Fprintf(m.out, "\tPhone book\n%s\n", cli.Rule())

	for {
		answer, err := m.in.Choice(mainPrompt)
		if err != nil {
			return endOfInput(err)
		}
		m.clearScreen()
		m.log.Debug("menu command", zap.String("answer", answer))

		switch answer {
		case "0":
			return nil
		case "1":
			err = m.show()
		case "2":
			err = m.add()
		case "3":
			err = m.remove()
		case "4":
			err = m.edit()
		case "5":
			err = m.search()
		default:
			m.notice(msgInvalidCommand)
			continue
		}
		if err != nil {
			return endOfInput(err)
		}
	}
}

// endOfInput turns io.EOF into a clean exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (m *Menu) show() error {
	entries := m.contacts.List()
	if len(entries) == 0 {
		m.notice(msgNoContacts)
		return nil
	}
	return m.page("Contacts", entries)
}

// page shows entries a page at a time until the user goes back.
func (m *Menu) page(title string, entries []model.Entry) error {
	p := book.NewPager(len(entries), m.pageSize)
	for {
		fmt.Fprintf(m.out, "\t%s, page %d of %d\n%s\n", title, p.Page(), p.Pages(), cli.Rule())
		cli.RenderCards(m.out, book.Window(entries, p))

		answer, err := m.in.Choice(pagerPrompt)
		if err != nil {
			return err
		}
		m.clearScreen()

		switch answer {
		case "0":
			return nil
		case "1":
			if err := p.Next(); err != nil {
				m.notice(msgNoSuchPage)
			}
		case "2":
			if err := p.Prev(); err != nil {
				m.notice(msgNoSuchPage)
			}
		default:
			m.notice(msgInvalidCommand)
		}
	}
}

func (m *Menu) add() error {
	fmt.Fprintf(m.out, "\tNew contact\n%s\n", cli.Rule())

	var c model.Contact
	for _, f := range model.Fields {
		value, err := m.in.Ask(f.Label() + ": ")
		if err != nil {
			return err
		}
		if err := c.Set(f, value); err != nil {
			return err
		}
	}
	m.clearScreen()

	id, err := m.contacts.Add(c)
	if err != nil {
		m.notice("Could not add contact: " + err.Error())
		return nil
	}
	m.notice(fmt.Sprintf("Contact %s added.", id))
	return nil
}

// selectContact asks for an id until it names an existing contact.
// The bool is false when the user goes back.
func (m *Menu) selectContact(title string) (model.ID, bool, error) {
	for {
		fmt.Fprintf(m.out, "\t%s\n%s\n", title, cli.Rule())

		answer, err := m.in.Choice(idPrompt)
		if err != nil {
			return "", false, err
		}
		m.clearScreen()

		if answer == "0" {
			return "", false, nil
		}
		id, err := model.ParseID(answer)
		if err == nil {
			if _, err = m.contacts.Get(id); err == nil {
				return id, true, nil
			}
		}
		m.notice(msgNoSuchContact)
	}
}

func (m *Menu) remove() error {
	if m.contacts.Len() == 0 {
		m.notice(msgNoContacts)
		return nil
	}

	id, ok, err := m.selectContact("Remove contact")
	if err != nil || !ok {
		return err
	}

	for {
		if err := m.card(id); err != nil {
			return nil
		}

		answer, err := m.in.Choice(confirmPrompt)
		if err != nil {
			return err
		}
		m.clearScreen()

		switch answer {
		case "1":
			if err := m.contacts.Remove(id); err != nil {
				m.notice("Could not remove contact: " + err.Error())
				return nil
			}
			m.notice(msgRemoved)
			return nil
		case "2":
			return nil
		default:
			m.notice(msgInvalidCommand)
		}
	}
}

func (m *Menu) edit() error {
	if m.contacts.Len() == 0 {
		m.notice(msgNoContacts)
		return nil
	}

	id, ok, err := m.selectContact("Edit contact")
	if err != nil || !ok {
		return err
	}

	for {
		if err := m.card(id); err != nil {
			return nil
		}

		answer, err := m.in.Choice(fieldPrompt("Choose what to change:", "0 - Back to menu"))
		if err != nil {
			return err
		}
		m.clearScreen()

		if answer == "0" {
			return nil
		}
		field, err := model.FieldByCode(answer)
		if err != nil {
			m.notice(msgInvalidCommand)
			continue
		}

		value, err := m.in.Ask(valuePrompt)
		if err != nil {
			return err
		}
		m.clearScreen()

		if err := m.contacts.Edit(id, field, value); err != nil {
			m.notice("Could not update contact: " + err.Error())
			continue
		}
		m.notice(msgUpdated)
	}
}

func (m *Menu) search() error {
	if m.contacts.Len() == 0 {
		m.notice(msgNoContacts)
		return nil
	}

	prompt := fieldPrompt("Search by which fields?\nEnter one or more codes, separated by commas.", "0 - Back to menu")
	for {
		fmt.Fprintf(m.out, "\tSearch contacts\n%s\n", cli.Rule())

		answer, err := m.in.Choice(prompt)
		if err != nil {
			return err
		}
		m.clearScreen()

		if answer == "0" {
			return nil
		}
		criteria, ok := m.parseSearchFields(answer)
		if !ok {
			m.notice(msgInvalidCommand)
			continue
		}

		for i := range criteria {
			value, err := m.in.Ask(fmt.Sprintf("Value for %s: ", criteria[i].Field.Label()))
			if err != nil {
				return err
			}
			criteria[i].Value = value
		}
		m.clearScreen()

		found, err := m.contacts.Search(criteria...)
		if err != nil {
			m.notice(err.Error())
			continue
		}
		if len(found) == 0 {
			m.notice(msgNotFound)
			continue
		}
		return m.page("Search results", found)
	}
}

// parseSearchFields turns "1, 3" into criteria without values. Repeated
// codes are reported and searched once.
func (m *Menu) parseSearchFields(answer string) ([]book.Criterion, bool) {
	var criteria []book.Criterion
	for _, code := range strings.Split(answer, ",") {
		f, err := model.FieldByCode(code)
		if err != nil {
			return nil, false
		}
		criteria = append(criteria, book.Criterion{Field: f})
	}

	dups := book.DuplicateFields(criteria)
	if len(dups) == 0 {
		return criteria, true
	}

	labels := make([]string, len(dups))
	for i, f := range dups {
		labels[i] = f.Label()
	}
	m.notice(fmt.Sprintf("Listed more than once, searched once: %s.", strings.Join(labels, ", ")))

	seen := make(map[model.Field]bool, len(criteria))
	unique := criteria[:0]
	for _, c := range criteria {
		if !seen[c.Field] {
			seen[c.Field] = true
			unique = append(unique, c)
		}
	}
	return unique, true
}

// card prints the contact between rules. It fails only if the contact
// disappeared.
func (m *Menu) card(id model.ID) error {
	c, err := m.contacts.Get(id)
	if err != nil {
		m.notice(msgNoSuchContact)
		return err
	}
	fmt.Fprintln(m.out, cli.Rule())
	cli.RenderCard(m.out, model.Entry{ID: id, Contact: c})
	fmt.Fprintln(m.out, cli.Rule())
	return nil
}

func (m *Menu) notice(msg string) {
	fmt.Fprintf(m.out, "\t%s\n%s\n", msg, cli.Rule())
}

func (m *Menu) clearScreen() {
	if m.clear {
		cli.ClearScreen(m.out)
	}
}

// fieldPrompt lists the six field codes between header and footer.
func fieldPrompt(header, footer string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, f := range model.Fields {
		fmt.Fprintf(&b, "%s - %s\n", f.Code(), f.Label())
	}
	b.WriteString(footer)
	b.WriteString("\n-> ")
	return b.String()
}
