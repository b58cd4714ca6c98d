package user

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lastbite/user-service/internal/notification"
)

// Service applies the account update rules: every mutation loads the current
// record, rejects no-op changes, checks cross-user uniqueness where it
// applies, then stamps and persists.
type Service struct {
	repo     Repository
	notifier notification.Notifier
}

// NewService creates a user service. The notifier may be nil.
func NewService(repo Repository, notifier notification.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// RegistrationInput captures the data required to create an account.
type RegistrationInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	CountryCode CountryCode
	PhoneNumber string
	Role        Role
}

// validate collects every field failure before returning.
func (in RegistrationInput) validate() error {
	errs := ValidationErrors{}

	checkName(errs, "firstName", "First name", in.FirstName, true)
	checkName(errs, "lastName", "Last name", in.LastName, true)

	if in.Email == "" {
		errs.add("email", "Email cannot be empty")
	} else if !ValidEmail(in.Email) {
		errs.add("email", "Invalid email address format")
	}

	if in.Password == "" {
		errs.add("password", "Password cannot be empty")
	} else if !ValidPassword(in.Password) {
		errs.add("password", "Password must be at least 8 characters long and contain at least one letter and one number")
	}

	if !in.CountryCode.Valid() {
		errs.add("countryCode", "Country code is required")
	}

	if in.PhoneNumber == "" {
		errs.add("phoneNumber", "Phone number cannot be empty")
	} else if !ValidPhone(in.CountryCode, in.PhoneNumber) {
		errs.add("phoneNumber", "Invalid phone number format")
	}

	if !in.Role.Valid() {
		errs.add("role", "Role is required")
	}

	return errs.orNil()
}

func checkName(errs ValidationErrors, field, label, value string, required bool) {
	if value == "" {
		if required {
			errs.add(field, label+" cannot be empty")
		}
		return
	}
	if !ValidName(value) {
		errs.add(field, label+" can only contain letters, spaces, apostrophes and hyphens")
	}
	if !ValidNameLength(value) {
		errs.add(field, label+" must be between 2 and 100 characters")
	}
}

// Register creates a new account. The email uniqueness check runs first; the
// phone check is skipped if it fails. The store's own unique indexes remain
// the final authority under concurrent registrations.
func (s *Service) Register(ctx context.Context, in RegistrationInput) (Public, error) {
	if err := in.validate(); err != nil {
		return Public{}, err
	}

	if _, found, err := s.repo.FindByEmail(ctx, in.Email); err != nil {
		return Public{}, err
	} else if found {
		return Public{}, EmailTakenError{Email: in.Email}
	}

	if _, found, err := s.repo.FindByPhone(ctx, in.PhoneNumber); err != nil {
		return Public{}, err
	} else if found {
		return Public{}, PhoneTakenError{PhoneNumber: in.PhoneNumber}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Public{}, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, User{
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		CountryCode:       in.CountryCode,
		PhoneNumber:       in.PhoneNumber,
		PasswordHash:      hash,
		Role:              in.Role,
		CreatedAt:         now,
		UpdatedAt:         now,
		PasswordUpdatedAt: now,
	})
	if err != nil {
		return Public{}, err
	}

	s.notify(ctx, notification.KindEmailVerification, created.Email)
	return created.Public(), nil
}

// Get returns the public projection of a user.
func (s *Service) Get(ctx context.Context, id int) (Public, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Public{}, err
	}
	return u.Public(), nil
}

// List returns the requested zero-based page ordered by first name.
func (s *Service) List(ctx context.Context, page, size int) ([]Public, error) {
	users, err := s.repo.List(ctx, page, size)
	if err != nil {
		return nil, err
	}
	out := make([]Public, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}

// EmailInfo returns the email address and its verification status.
func (s *Service) EmailInfo(ctx context.Context, id int) (EmailInfo, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmailInfo{}, err
	}
	return EmailInfo{Email: u.Email, EmailVerified: u.EmailVerified}, nil
}

// ChangeEmail updates the email address. A changed email resets the
// verified flag until an external process re-verifies it.
func (s *Service) ChangeEmail(ctx context.Context, id int, newEmail string) error {
	errs := ValidationErrors{}
	if newEmail == "" {
		errs.add("newEmail", "New email cannot be empty")
	} else if !ValidEmail(newEmail) {
		errs.add("newEmail", "Invalid email address format")
	}
	if err := errs.orNil(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if u.Email == newEmail {
		return ErrEmailNotChanged
	}

	if _, found, err := s.repo.FindByEmail(ctx, newEmail); err != nil {
		return err
	} else if found {
		return EmailTakenError{Email: newEmail}
	}

	u.Email = newEmail
	u.EmailVerified = false
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	s.notify(ctx, notification.KindEmailVerification, newEmail)
	return nil
}

// ChangePassword verifies the current password before anything else, then
// rejects a new password identical to the current one. Only
// PasswordUpdatedAt is stamped; UpdatedAt tracks profile changes.
func (s *Service) ChangePassword(ctx context.Context, id int, currentPassword, newPassword string) error {
	errs := ValidationErrors{}
	if currentPassword == "" {
		errs.add("currentPassword", "Current password cannot be empty")
	}
	if newPassword == "" {
		errs.add("newPassword", "New password cannot be empty")
	} else if !ValidPassword(newPassword) {
		errs.add("newPassword", "Password must be at least 8 characters long and contain at least one letter and one number")
	}
	if err := errs.orNil(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(currentPassword)) != nil {
		return ErrIncorrectPassword
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(newPassword)) == nil {
		return ErrPasswordNotChanged
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	u.PasswordUpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, u)
}

// ChangePhone updates the phone number. Only the number participates in the
// no-op comparison; a country code change alone rides along with a number
// change but never counts as one.
func (s *Service) ChangePhone(ctx context.Context, id int, code CountryCode, newNumber string) error {
	errs := ValidationErrors{}
	if !code.Valid() {
		errs.add("countryCode", "Country code is required")
	}
	if newNumber == "" {
		errs.add("newPhoneNumber", "Phone number cannot be empty")
	} else if !ValidPhone(code, newNumber) {
		errs.add("newPhoneNumber", "Invalid phone number format")
	}
	if err := errs.orNil(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if u.PhoneNumber == newNumber {
		return ErrPhoneNotChanged
	}

	if _, found, err := s.repo.FindByPhone(ctx, newNumber); err != nil {
		return err
	} else if found {
		return PhoneTakenError{PhoneNumber: newNumber}
	}

	if u.CountryCode != code {
		u.CountryCode = code
	}
	u.PhoneNumber = newNumber
	u.PhoneVerified = false
	u.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	s.notify(ctx, notification.KindPhoneVerification, code.DialPrefix()+newNumber)
	return nil
}

// ChangeName applies a partial update: an empty incoming field means leave
// unchanged. At least one field must actually differ.
func (s *Service) ChangeName(ctx context.Context, id int, firstName, lastName string) error {
	errs := ValidationErrors{}
	checkName(errs, "firstName", "First name", firstName, false)
	checkName(errs, "lastName", "Last name", lastName, false)
	if err := errs.orNil(); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	changed := false
	if firstName != "" && firstName != u.FirstName {
		u.FirstName = firstName
		changed = true
	}
	if lastName != "" && lastName != u.LastName {
		u.LastName = lastName
		changed = true
	}
	if !changed {
		return ErrNameNotChanged
	}

	u.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, u)
}

// Delete removes the account. An unknown id is an error, not a no-op.
func (s *Service) Delete(ctx context.Context, id int) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return NotFoundError{ID: id}
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) notify(ctx context.Context, kind, destination string) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.Send(ctx, notification.Message{
		Kind:        kind,
		Destination: destination,
		Body:        "verification required",
	})
}
