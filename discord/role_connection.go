package discord

import (
	"strconv"

	"golang.org/x/text/language"
)

// MetadataType is the comparison a linked role performs on a role connection value.
type MetadataType int

const (
	MetadataTypeUnknown                 MetadataType = -1
	MetadataTypeIntegerLessThanOrEqual  MetadataType = 1
	MetadataTypeIntegerGreaterOrEqual   MetadataType = 2
	MetadataTypeIntegerEqual            MetadataType = 3
	MetadataTypeIntegerNotEqual         MetadataType = 4
	MetadataTypeDatetimeLessThanOrEqual MetadataType = 5
	MetadataTypeDatetimeGreaterOrEqual  MetadataType = 6
	MetadataTypeBooleanEqual            MetadataType = 7
	MetadataTypeBooleanNotEqual         MetadataType = 8
)

var metadataTypes = []MetadataType{
	MetadataTypeIntegerLessThanOrEqual,
	MetadataTypeIntegerGreaterOrEqual,
	MetadataTypeIntegerEqual,
	MetadataTypeIntegerNotEqual,
	MetadataTypeDatetimeLessThanOrEqual,
	MetadataTypeDatetimeGreaterOrEqual,
	MetadataTypeBooleanEqual,
	MetadataTypeBooleanNotEqual,
}

func MetadataTypeFromCode(code int) MetadataType {
	return fromCode(metadataTypes, MetadataType(code), MetadataTypeUnknown)
}

func (t *MetadataType) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, t, MetadataTypeFromCode)
}

const (
	MaxRoleConnectionKeyLength         = 50
	MaxRoleConnectionNameLength        = 100
	MaxRoleConnectionDescriptionLength = 200
	MaxRoleConnectionRecords           = 5
)

// RoleConnectionMetadata describes one value an application exposes to linked roles.
type RoleConnectionMetadata struct {
	NameLocalizations        map[string]string `json:"name_localizations,omitempty"`
	DescriptionLocalizations map[string]string `json:"description_localizations,omitempty"`
	Key                      string            `json:"key" validate:"required,max=50,snakekey"`
	Name                     string            `json:"name" validate:"notblank,max=100"`
	Description              string            `json:"description" validate:"notblank,max=200"`
	Type                     MetadataType      `json:"type"`
}

// NewRoleConnectionMetadata validates and builds a metadata record.
func NewRoleConnectionMetadata(metadataType MetadataType, key, name, description string) (RoleConnectionMetadata, error) {
	metadata := RoleConnectionMetadata{
		Type:        metadataType,
		Key:         key,
		Name:        name,
		Description: description,
	}

	if err := metadata.Validate(); err != nil {
		return RoleConnectionMetadata{}, err
	}

	return metadata, nil
}

// Validate checks the lengths and key format of the record.
func (m RoleConnectionMetadata) Validate() error {
	if fromCode(metadataTypes, m.Type, MetadataTypeUnknown) == MetadataTypeUnknown {
		return &ValidationError{Field: "type", Message: "is not a known metadata type"}
	}

	if err := validateLength("key", m.Key, 1, MaxRoleConnectionKeyLength); err != nil {
		return err
	}

	return validateParams(m)
}

// WithNameLocalization returns a copy of the record with a translated name.
func (m RoleConnectionMetadata) WithNameLocalization(locale, name string) (RoleConnectionMetadata, error) {
	if err := validateLocale("name_localizations."+locale, locale); err != nil {
		return m, err
	}

	if err := validateLength("name_localizations."+locale, name, 1, MaxRoleConnectionNameLength); err != nil {
		return m, err
	}

	m.NameLocalizations = copyLocalizations(m.NameLocalizations, locale, name)

	return m, nil
}

// WithDescriptionLocalization returns a copy of the record with a translated description.
func (m RoleConnectionMetadata) WithDescriptionLocalization(locale, description string) (RoleConnectionMetadata, error) {
	if err := validateLocale("description_localizations."+locale, locale); err != nil {
		return m, err
	}

	if err := validateLength("description_localizations."+locale, description, 1, MaxRoleConnectionDescriptionLength); err != nil {
		return m, err
	}

	m.DescriptionLocalizations = copyLocalizations(m.DescriptionLocalizations, locale, description)

	return m, nil
}

// validateLocale accepts BCP 47 tags such as "fr" or "en-US".
func validateLocale(field, locale string) error {
	if locale == "" {
		return &ValidationError{Field: field, Message: "may not be blank"}
	}

	if _, err := language.Parse(locale); err != nil {
		return &ValidationError{Field: field, Message: "is not a valid locale"}
	}

	return nil
}

func copyLocalizations(localizations map[string]string, locale, value string) map[string]string {
	copied := make(map[string]string, len(localizations)+1)

	for k, v := range localizations {
		copied[k] = v
	}

	copied[locale] = value

	return copied
}

// Equal compares every field including localizations.
func (m RoleConnectionMetadata) Equal(other RoleConnectionMetadata) bool {
	return m.Key == other.Key &&
		m.Name == other.Name &&
		m.Description == other.Description &&
		m.Type == other.Type &&
		localizationsEqual(m.NameLocalizations, other.NameLocalizations) &&
		localizationsEqual(m.DescriptionLocalizations, other.DescriptionLocalizations)
}

func localizationsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}

	for k, v := range a {
		if other, ok := b[k]; !ok || other != v {
			return false
		}
	}

	return true
}

// ValidateRoleConnectionMetadata checks every record and the per application limit.
func ValidateRoleConnectionMetadata(records []RoleConnectionMetadata) error {
	if len(records) > MaxRoleConnectionRecords {
		return &ValidationError{
			Field:   "metadata",
			Message: "may not contain more than " + strconv.Itoa(MaxRoleConnectionRecords) + " records",
		}
	}

	for _, record := range records {
		if err := record.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// RetrieveRoleConnectionMetadata fetches the records of the session's application.
func RetrieveRoleConnectionMetadata(s *Session) (*RestAction[[]RoleConnectionMetadata], error) {
	if s == nil {
		return nil, ErrNoExecutor
	}

	if s.ApplicationID.IsNil() {
		return nil, &ValidationError{Field: "application_id", Message: "may not be blank"}
	}

	route, err := RouteGetRoleConnectionMetadata.Compile(s.ApplicationID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[[]RoleConnectionMetadata](s, route, nil), nil
}

// UpdateRoleConnectionMetadata replaces the records of the session's application.
func UpdateRoleConnectionMetadata(s *Session, records []RoleConnectionMetadata) (*RestAction[[]RoleConnectionMetadata], error) {
	if err := ValidateRoleConnectionMetadata(records); err != nil {
		return nil, err
	}

	if s == nil {
		return nil, ErrNoExecutor
	}

	if s.ApplicationID.IsNil() {
		return nil, &ValidationError{Field: "application_id", Message: "may not be blank"}
	}

	route, err := RouteUpdateRoleConnectionMetadata.Compile(s.ApplicationID.String())
	if err != nil {
		return nil, err
	}

	return NewRestAction[[]RoleConnectionMetadata](s, route, List[RoleConnectionMetadata](records)), nil
}
