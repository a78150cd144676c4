package library

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SeedFile is the JSON document a fresh library can be loaded from.
type SeedFile struct {
	Books   []SeedBook   `json:"books"`
	Members []SeedMember `json:"members"`
}

// SeedBook describes one catalog entry to create.
type SeedBook struct {
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	ISBN            string  `json:"isbn"`
	Genre           string  `json:"genre"`
	Copies          int     `json:"copies"`
	Price           float64 `json:"price"`
	PublicationDate string  `json:"publication_date"`
}

// SeedMember describes one member to register, together with the login
// credentials the presentation layer keeps for them. MaxBooks of zero means
// "use the role's default quota".
type SeedMember struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
	MaxBooks int    `json:"max_books,omitempty"`
}

// Credential maps a username to a registered member id. Credentials live in
// the presentation layer; the core never sees usernames or passwords beyond
// producing this mapping during seeding.
type Credential struct {
	Username string
	Password string
	MemberID int64
}

// DefaultSeed returns the built-in starter data: four books and four members
// covering every role.
func DefaultSeed() SeedFile {
	return SeedFile{
		Books: []SeedBook{
			{"The Great Gatsby", "F. Scott Fitzgerald", "978-0-7432-7356-5", "Fiction", 3, 12.99, "1925-04-10"},
			{"To Kill a Mockingbird", "Harper Lee", "978-0-06-112008-4", "Fiction", 2, 14.99, "1960-07-11"},
			{"1984", "George Orwell", "978-0-452-28423-4", "Dystopian", 4, 13.99, "1949-06-08"},
			{"Data Structures and Algorithms", "Thomas Cormen", "978-0-262-03384-8", "Computer Science", 5, 89.99, "2009-07-31"},
		},
		Members: []SeedMember{
			{Username: "admin", Password: "admin123", Name: "System Administrator", Email: "admin@library.com", Phone: "555-0001", Role: RoleAdmin, MaxBooks: 10},
			{Username: "librarian1", Password: "lib123", Name: "John Smith", Email: "john@library.com", Phone: "555-0002", Role: RoleLibrarian, MaxBooks: 10},
			{Username: "student1", Password: "stu123", Name: "Alice Johnson", Email: "alice@student.edu", Phone: "555-0003", Role: RoleStudent, MaxBooks: 5},
			{Username: "faculty1", Password: "fac123", Name: "Dr. Robert Brown", Email: "robert@university.edu", Phone: "555-0004", Role: RoleFaculty, MaxBooks: 10},
		},
	}
}

// LoadSeedFile reads and decodes a seed file.
func LoadSeedFile(path string) (SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	var seed SeedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return SeedFile{}, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	return seed, nil
}

// WriteSeedFile encodes the seed data as indented JSON at path.
func WriteSeedFile(path string, seed SeedFile) error {
	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return fmt.Errorf("seed: encode: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("seed: write %s: %w", path, err)
	}
	return nil
}

// ApplySeed loads the seed data into the catalog and registry and returns the
// credential rows for the presentation layer's login table.
func ApplySeed(seed SeedFile, catalog *Catalog, registry *Registry) ([]Credential, error) {
	for _, b := range seed.Books {
		if _, err := catalog.AddBook(b.Title, b.Author, b.ISBN, b.Genre, b.Copies, b.Price, b.PublicationDate); err != nil {
			return nil, fmt.Errorf("seed: book %q: %w", b.Title, err)
		}
	}

	creds := make([]Credential, 0, len(seed.Members))
	for _, m := range seed.Members {
		maxBooks := m.MaxBooks
		if maxBooks == 0 {
			maxBooks = m.Role.DefaultQuota()
		}
		id, err := registry.AddMember(m.Name, m.Email, m.Phone, m.Role, maxBooks)
		if err != nil {
			return nil, fmt.Errorf("seed: member %q: %w", m.Username, err)
		}
		creds = append(creds, Credential{Username: m.Username, Password: m.Password, MemberID: id})
	}
	return creds, nil
}
