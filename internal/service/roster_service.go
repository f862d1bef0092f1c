package service

import (
	"errors"
	"fmt"
	"sort"

	"packcamp/internal/models"
	"packcamp/internal/repository"
	"packcamp/internal/validation"
)

var (
	ErrPersonNotFound    = errors.New("person not found")
	ErrHouseholdNotFound = errors.New("household not found")
	ErrSelfDeletion      = errors.New("cannot delete your own account")
)

// RosterService manages people and their household grouping
type RosterService struct {
	personRepo    *repository.PersonRepository
	householdRepo *repository.HouseholdRepository
}

// NewRosterService creates a new roster service
func NewRosterService(personRepo *repository.PersonRepository, householdRepo *repository.HouseholdRepository) *RosterService {
	return &RosterService{
		personRepo:    personRepo,
		householdRepo: householdRepo,
	}
}

// NewPerson builds an unsaved person attached to the given default
// household. Pass 0 for no household.
func (s *RosterService) NewPerson(defaultHouseholdID int64) *models.Person {
	return &models.Person{
		Gender:      "Not provided",
		HouseholdID: defaultHouseholdID,
	}
}

// SavePerson validates and persists a person. A login-capable person must
// carry a username and an email address; a person who cannot log in has the
// username cleared so it never collides with a real account.
func (s *RosterService) SavePerson(person *models.Person) (*models.Person, error) {
	if err := validation.ValidateName(person.FirstName); err != nil {
		return nil, validation.Error{Field: "first_name", Message: err.Error()}
	}
	if err := validation.ValidateName(person.LastName); err != nil {
		return nil, validation.Error{Field: "last_name", Message: err.Error()}
	}

	if person.CanLogin {
		if person.Username == "" {
			return nil, validation.Error{Field: "username", Message: "username is required for login accounts"}
		}
		if err := validation.ValidateEmail(person.Email); err != nil {
			return nil, validation.Error{Field: "email", Message: "a valid email is required for login accounts"}
		}
	} else {
		person.Username = ""
	}

	if person.Email != "" {
		if err := validation.ValidateEmail(person.Email); err != nil {
			return nil, validation.Error{Field: "email", Message: err.Error()}
		}
	}

	if person.HouseholdID != 0 {
		household, err := s.householdRepo.GetByID(person.HouseholdID)
		if err != nil {
			return nil, fmt.Errorf("failed to check household: %w", err)
		}
		if household == nil {
			return nil, ErrHouseholdNotFound
		}
	}

	if person.ID == 0 {
		created, err := s.personRepo.Create(person)
		if err != nil {
			if isDuplicateConstraint(err) {
				return nil, ErrUsernameTaken
			}
			return nil, fmt.Errorf("failed to create person: %w", err)
		}
		return created, nil
	}

	if err := s.personRepo.Update(person); err != nil {
		if isDuplicateConstraint(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update person: %w", err)
	}
	return person, nil
}

// GetPerson retrieves a person by ID
func (s *RosterService) GetPerson(id int64) (*models.Person, error) {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	if person == nil {
		return nil, ErrPersonNotFound
	}
	return person, nil
}

// GetAllPeople returns every person on the roster
func (s *RosterService) GetAllPeople() ([]models.Person, error) {
	people, err := s.personRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// DeletePerson removes a person. The acting person can never delete their
// own account; that guard runs before any lookup.
func (s *RosterService) DeletePerson(id, actingPersonID int64) error {
	if id == actingPersonID {
		return ErrSelfDeletion
	}

	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get person: %w", err)
	}
	if person == nil {
		return ErrPersonNotFound
	}

	if err := s.personRepo.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return nil
}

// HouseholdMembers returns the members of a household, sorted by display name
func (s *RosterService) HouseholdMembers(householdID int64) ([]models.Person, error) {
	people, err := s.personRepo.GetByHousehold(householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to list household members: %w", err)
	}
	sort.Slice(people, func(i, j int) bool {
		if people[i].DisplayName() != people[j].DisplayName() {
			return people[i].DisplayName() < people[j].DisplayName()
		}
		return people[i].ID < people[j].ID
	})
	return people, nil
}

// SaveHousehold validates and persists a household
func (s *RosterService) SaveHousehold(household *models.Household) (*models.Household, error) {
	if err := validation.ValidateName(household.Name); err != nil {
		return nil, validation.Error{Field: "name", Message: err.Error()}
	}

	if household.ID == 0 {
		created, err := s.householdRepo.Create(household)
		if err != nil {
			return nil, fmt.Errorf("failed to create household: %w", err)
		}
		return created, nil
	}

	if err := s.householdRepo.Update(household); err != nil {
		return nil, fmt.Errorf("failed to update household: %w", err)
	}
	return household, nil
}

// GetHousehold retrieves a household by ID
func (s *RosterService) GetHousehold(id int64) (*models.Household, error) {
	household, err := s.householdRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	if household == nil {
		return nil, ErrHouseholdNotFound
	}
	return household, nil
}

// GetAllHouseholds returns every household, sorted by name
func (s *RosterService) GetAllHouseholds() ([]models.Household, error) {
	households, err := s.householdRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}
	return households, nil
}

// GetHouseholdsWithMembers returns every household together with its members
func (s *RosterService) GetHouseholdsWithMembers() ([]models.HouseholdWithMembers, error) {
	households, err := s.householdRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list households: %w", err)
	}

	result := make([]models.HouseholdWithMembers, 0, len(households))
	for _, h := range households {
		members, err := s.HouseholdMembers(h.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.HouseholdWithMembers{
			Household: h,
			Members:   members,
		})
	}
	return result, nil
}

// DeleteHousehold removes a household. Members stay on the roster with
// their household link cleared by the schema.
func (s *RosterService) DeleteHousehold(id int64) error {
	household, err := s.householdRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to get household: %w", err)
	}
	if household == nil {
		return ErrHouseholdNotFound
	}

	if err := s.householdRepo.DeleteByID(id); err != nil {
		return fmt.Errorf("failed to delete household: %w", err)
	}
	return nil
}
