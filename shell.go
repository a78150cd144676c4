package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"library-circulation/library"
)

// shell is the interactive circulation desk. It owns the username→credential
// table and the current session; everything else goes through the core.
type shell struct {
	svc      *library.CirculationService
	catalog  *library.Catalog
	registry *library.Registry
	ledger   *library.Ledger

	creds    map[string]library.Credential
	session  *library.Session
	scanner  *bufio.Scanner
	fineRate float64
}

func newShell(svc *library.CirculationService, catalog *library.Catalog, registry *library.Registry, ledger *library.Ledger, creds []library.Credential, fineRate float64) *shell {
	byName := make(map[string]library.Credential, len(creds))
	for _, c := range creds {
		byName[c.Username] = c
	}
	return &shell{
		svc:      svc,
		catalog:  catalog,
		registry: registry,
		ledger:   ledger,
		creds:    byName,
		scanner:  bufio.NewScanner(os.Stdin),
		fineRate: fineRate,
	}
}

func (sh *shell) run() {
	fmt.Println("Welcome to the Library Circulation Desk!")
	sh.printHelp()

	for {
		fmt.Print("\n> ")
		if !sh.scanner.Scan() {
			return
		}
		cmd := strings.ToLower(strings.TrimSpace(sh.scanner.Text()))

		switch cmd {
		case "help":
			sh.printHelp()
		case "login":
			sh.handleLogin()
		case "logout":
			sh.handleLogout()
		case "register":
			sh.handleRegister()
		case "list books":
			sh.handleListBooks()
		case "search":
			sh.handleSearch()
		case "issue":
			sh.handleIssue()
		case "return":
			sh.handleReturn()
		case "my loans":
			sh.handleMyLoans()
		case "my account":
			sh.handleMyAccount()
		case "add book":
			sh.handleAddBook()
		case "overdue":
			sh.handleOverdue()
		case "list members":
			sh.handleListMembers()
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "":
			// empty line, just reprompt
		default:
			fmt.Println("Unknown command. Type 'help' for the command list.")
		}
	}
}

func (sh *shell) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  Anyone:    list books, search, login, register, help, exit")
	if sh.session != nil {
		fmt.Println("  Signed in: issue, return, my loans, my account, logout")
		if sh.session.Role.IsStaff() {
			fmt.Println("  Staff:     add book, overdue, list members")
		}
	}
}

// readPassword reads a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (sh *shell) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !sh.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(sh.scanner.Text()), true
}

func (sh *shell) promptID(label string) (int64, bool) {
	text, ok := sh.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Printf("Not a valid id: %q\n", text)
		return 0, false
	}
	return id, true
}

func (sh *shell) handleLogin() {
	if sh.session != nil {
		fmt.Printf("Already signed in as %s. Use 'logout' first.\n", sh.session.Name)
		return
	}

	username, ok := sh.prompt("Username: ")
	if !ok {
		return
	}
	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Could not read password: %v\n", err)
		return
	}

	cred, ok := sh.creds[username]
	if !ok || cred.Password != password {
		fmt.Println("Invalid username or password.")
		return
	}
	member, ok := sh.registry.Get(cred.MemberID)
	if !ok {
		fmt.Println("Invalid username or password.")
		return
	}

	sh.session = library.NewSession(member)
	fmt.Printf("Welcome, %s (%s)!\n", member.Name, member.Role)
}

func (sh *shell) handleLogout() {
	if sh.session == nil {
		fmt.Println("Not signed in.")
		return
	}
	fmt.Printf("Goodbye, %s!\n", sh.session.Name)
	sh.session = nil
}

func (sh *shell) handleRegister() {
	username, ok := sh.prompt("Username: ")
	if !ok {
		return
	}
	if _, exists := sh.creds[username]; exists {
		fmt.Println("Username already taken. Please choose a different one.")
		return
	}

	name, ok := sh.prompt("Full name: ")
	if !ok {
		return
	}
	email, ok := sh.prompt("Email: ")
	if !ok {
		return
	}
	phone, ok := sh.prompt("Phone: ")
	if !ok {
		return
	}
	roleText, ok := sh.prompt("Role (student/faculty): ")
	if !ok {
		return
	}
	role := library.Role(strings.ToLower(roleText))
	if role != library.RoleStudent && role != library.RoleFaculty {
		fmt.Println("Only student and faculty self-registration is allowed.")
		return
	}
	password, err := readPassword("Password: ")
	if err != nil {
		fmt.Printf("Could not read password: %v\n", err)
		return
	}

	id, err := sh.registry.AddMember(name, email, phone, role, role.DefaultQuota())
	if err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		return
	}
	sh.creds[username] = library.Credential{Username: username, Password: password, MemberID: id}
	fmt.Printf("Registered with member ID %d. You can now log in.\n", id)
}

func (sh *shell) handleListBooks() {
	books := sh.catalog.Books()
	if len(books) == 0 {
		fmt.Println("No books in the catalog.")
		return
	}
	printBookTable(books)
}

func (sh *shell) handleSearch() {
	fieldText, ok := sh.prompt("Search by (title/author/isbn/genre): ")
	if !ok {
		return
	}
	term, ok := sh.prompt("Search term: ")
	if !ok {
		return
	}

	results := sh.catalog.Search(term, library.SearchField(strings.ToLower(fieldText)))
	if len(results) == 0 {
		fmt.Println("No books found matching your search.")
		return
	}
	printBookTable(results)
}

func (sh *shell) handleIssue() {
	bookID, ok := sh.promptID("Book ID to issue: ")
	if !ok {
		return
	}

	receipt, err := sh.svc.Issue(sh.session, bookID, time.Now())
	if err != nil {
		printCirculationError(err)
		return
	}
	fmt.Printf("Book issued. Transaction ID: %d, due %s.\n",
		receipt.TransactionID, receipt.DueAt.Format("2006-01-02"))
}

func (sh *shell) handleReturn() {
	bookID, ok := sh.promptID("Book ID to return: ")
	if !ok {
		return
	}

	fine, err := sh.svc.GiveBack(sh.session, bookID, time.Now())
	if err != nil {
		printCirculationError(err)
		return
	}
	fmt.Println("Book returned, thank you!")
	if fine > 0 {
		fmt.Printf("Fine due: $%.2f. Please pay at the counter.\n", fine)
	}
}

func (sh *shell) handleMyLoans() {
	if sh.session == nil {
		fmt.Println("Please log in first.")
		return
	}

	txs := sh.ledger.MemberTransactions(sh.session.MemberID)
	if len(txs) == 0 {
		fmt.Println("No transactions on record.")
		return
	}

	now := time.Now()
	fmt.Printf("%-6s %-30s %-12s %-12s %-10s %8s\n", "TX", "Title", "Issued", "Due", "Status", "Fine")
	for _, tx := range txs {
		// Re-evaluate so open loans show the up-to-date fine.
		fine, err := sh.ledger.EvaluateFine(tx.ID, now, sh.fineRate)
		if err != nil {
			fine = tx.Fine
		}
		title := fmt.Sprintf("book %d", tx.BookID)
		if book, ok := sh.catalog.Get(tx.BookID); ok {
			title = book.Title
		}
		fmt.Printf("%-6d %-30s %-12s %-12s %-10s %8.2f\n",
			tx.ID, truncate(title, 30),
			tx.IssuedAt.Format("2006-01-02"), tx.DueAt.Format("2006-01-02"),
			tx.StatusAt(now), fine)
	}
}

func (sh *shell) handleMyAccount() {
	if sh.session == nil {
		fmt.Println("Please log in first.")
		return
	}
	member, ok := sh.registry.Get(sh.session.MemberID)
	if !ok {
		fmt.Println("Member record not found.")
		return
	}
	fmt.Printf("Member ID: %d\n", member.ID)
	fmt.Printf("Name:      %s\n", member.Name)
	fmt.Printf("Email:     %s\n", member.Email)
	fmt.Printf("Phone:     %s\n", member.Phone)
	fmt.Printf("Role:      %s\n", member.Role)
	fmt.Printf("Borrowed:  %d/%d\n", member.BorrowedBooks, member.MaxBooksAllowed)
}

func (sh *shell) handleAddBook() {
	if !sh.requireStaff() {
		return
	}

	title, ok := sh.prompt("Title: ")
	if !ok {
		return
	}
	author, ok := sh.prompt("Author: ")
	if !ok {
		return
	}
	isbn, ok := sh.prompt("ISBN: ")
	if !ok {
		return
	}
	genre, ok := sh.prompt("Genre: ")
	if !ok {
		return
	}
	copiesText, ok := sh.prompt("Copies: ")
	if !ok {
		return
	}
	copies, err := strconv.Atoi(copiesText)
	if err != nil {
		fmt.Printf("Not a valid copy count: %q\n", copiesText)
		return
	}
	priceText, ok := sh.prompt("Price: $")
	if !ok {
		return
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		fmt.Printf("Not a valid price: %q\n", priceText)
		return
	}
	pubDate, ok := sh.prompt("Publication date (YYYY-MM-DD): ")
	if !ok {
		return
	}

	id, err := sh.catalog.AddBook(title, author, isbn, genre, copies, price, pubDate)
	if err != nil {
		fmt.Printf("Error adding book: %v\n", err)
		return
	}
	fmt.Printf("Book added with ID %d.\n", id)
}

func (sh *shell) handleOverdue() {
	entries, err := sh.svc.ListOverdue(sh.session, time.Now())
	if err != nil {
		printCirculationError(err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("No overdue books.")
		return
	}

	fmt.Printf("%-6s %-25s %-30s %-12s %8s\n", "TX", "Member", "Title", "Due", "Fine")
	for _, e := range entries {
		fmt.Printf("%-6d %-25s %-30s %-12s %8.2f\n",
			e.Transaction.ID,
			truncate(e.Member.Name, 25), truncate(e.Book.Title, 30),
			e.Transaction.DueAt.Format("2006-01-02"), e.Transaction.Fine)
	}
}

func (sh *shell) handleListMembers() {
	if !sh.requireStaff() {
		return
	}

	members := sh.registry.Members()
	fmt.Printf("%-6s %-25s %-25s %-10s %9s\n", "ID", "Name", "Email", "Role", "Borrowed")
	for _, m := range members {
		fmt.Printf("%-6d %-25s %-25s %-10s %4d/%-4d\n",
			m.ID, truncate(m.Name, 25), truncate(m.Email, 25), m.Role,
			m.BorrowedBooks, m.MaxBooksAllowed)
	}
}

func (sh *shell) requireStaff() bool {
	if sh.session == nil {
		fmt.Println("Please log in first.")
		return false
	}
	if !sh.session.Role.IsStaff() {
		fmt.Println("Access denied. Librarian or admin privileges required.")
		return false
	}
	return true
}

func printBookTable(books []library.Book) {
	fmt.Printf("%-6s %-32s %-22s %-16s %11s %8s\n", "ID", "Title", "Author", "Genre", "Avail/Total", "Price")
	for _, b := range books {
		fmt.Printf("%-6d %-32s %-22s %-16s %5d/%-5d %8.2f\n",
			b.ID, truncate(b.Title, 32), truncate(b.Author, 22), truncate(b.Genre, 16),
			b.AvailableCopies, b.TotalCopies, b.Price)
	}
}

func printCirculationError(err error) {
	switch {
	case errors.Is(err, library.ErrNotLoggedIn):
		fmt.Println("Please log in first.")
	case errors.Is(err, library.ErrOverQuota):
		fmt.Println("You have reached your borrowing limit.")
	case errors.Is(err, library.ErrNoCopiesAvailable):
		fmt.Println("No copies of that book are available right now.")
	case errors.Is(err, library.ErrNoActiveLoan):
		fmt.Println("You have no active loan for that book.")
	case errors.Is(err, library.ErrNotFound):
		fmt.Println("No such book or member.")
	case errors.Is(err, library.ErrForbidden):
		fmt.Println("Access denied. Librarian or admin privileges required.")
	default:
		fmt.Printf("Error: %v\n", err)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
