// Package farajaland is the reference birth declaration form of the
// Farajaland test deployment.
package farajaland

import (
	"github.com/goliatone/go-formcond/pkg/action"
	"github.com/goliatone/go-formcond/pkg/countries"
	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/form"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
)

const (
	// CountryCode is the deployment's own (non-ISO) country code.
	CountryCode = "FAR"
	// EventBirth is the event type of the birth form.
	EventBirth = "birth"
	// BirthVersion is the id of the birth form version.
	BirthVersion = "birth-v1.0.0"
)

// Informant relations.
const (
	RelationMother        = "MOTHER"
	RelationFather        = "FATHER"
	RelationGrandmother   = "GRANDMOTHER"
	RelationGrandfather   = "GRANDFATHER"
	RelationBrother       = "BROTHER"
	RelationSister        = "SISTER"
	RelationLegalGuardian = "LEGAL_GUARDIAN"
	RelationSomeoneElse   = "SOMEONE_ELSE"
)

// Places of birth.
const (
	PlaceHealthFacility = "HEALTH_FACILITY"
	PlacePrivateHome    = "PRIVATE_HOME"
	PlaceOther          = "OTHER"
)

// Yes/no radio values.
const (
	Yes = "YES"
	No  = "NO"
)

// Countries returns the ISO table extended with Farajaland.
func Countries() *countries.Table {
	table, err := countries.ISO().With(countries.Country{Code: CountryCode, Name: "Farajaland"})
	if err != nil {
		panic(err)
	}
	return table
}

func msg(id, text string) message.Message {
	return message.New("event.birth."+id, text)
}

func path(raw string) fieldpath.Path { return fieldpath.MustParse(raw) }

var (
	relation      = predicate.Field("informant.relation")
	motherMissing = predicate.Field("mother.detailsNotAvailable")
	fatherMissing = predicate.Field("father.detailsNotAvailable")
	placeOfBirth  = predicate.Field("child.placeOfBirth")
	sameAsMother  = predicate.Field("father.addressSameAsMother")
)

// Birth builds the birth declaration form.
func Birth() *form.Version {
	table := Countries()

	return form.NewComposer(BirthVersion, EventBirth).
		Label(msg("label", "Birth declaration")).
		Page("introduction", msg("introduction.title", "Introduction"), introduction()).
		Page("child", msg("child.title", "Child's details"), child(table)).
		Page("informant", msg("informant.title", "Informant's details"), informant(table)).
		Page("mother", msg("mother.title", "Mother's details"), mother(table)).
		Page("father", msg("father.title", "Father's details"), father(table)).
		Page("documents", msg("documents.title", "Upload supporting documents"), documents()).
		Page("correction", msg("correction.title", "Correction details"), correction()).
		MustBuild()
}

// Register adds the birth form to reg and activates it.
func Register(reg *form.Registry) error {
	v := Birth()
	if err := reg.Register(v); err != nil {
		return err
	}
	return reg.Activate(v.ID)
}

func introduction() []form.Field {
	return []form.Field{
		{ID: path("introduction.text"), Type: form.TypeParagraph, Label: msg("introduction.text", "For the birth registration of children below 5 years old.")},
		{ID: path("introduction.checklist"), Type: form.TypeBulletList, Label: msg("introduction.checklist", "Information about the child, the mother and the father.")},
	}
}

func child(table *countries.Table) []form.Field {
	fields := []form.Field{
		{ID: path("child.firstname"), Type: form.TypeText, Required: true, Label: msg("child.firstname", "First name(s)")},
		{ID: path("child.surname"), Type: form.TypeText, Required: true, Label: msg("child.surname", "Last name")},
		{
			ID:       path("child.gender"),
			Type:     form.TypeSelect,
			Required: true,
			Label:    msg("child.gender", "Sex"),
			Options: []form.Option{
				{Value: "male", Label: msg("child.gender.male", "Male")},
				{Value: "female", Label: msg("child.gender.female", "Female")},
				{Value: "unknown", Label: msg("child.gender.unknown", "Unknown")},
			},
		},
		{
			ID:       path("child.dob"),
			Type:     form.TypeDate,
			Required: true,
			Label:    msg("child.dob", "Date of birth"),
			Validation: []form.ValidationRule{
				{Predicate: predicate.Field("child.dob").IsBeforeNow(), Message: form.MsgDateInFuture},
			},
		},
		{
			ID:       path("child.placeOfBirth"),
			Type:     form.TypeSelect,
			Required: true,
			Label:    msg("child.placeOfBirth", "Place of delivery"),
			Options: []form.Option{
				{Value: PlaceHealthFacility, Label: msg("child.placeOfBirth.facility", "Health Institution")},
				{Value: PlacePrivateHome, Label: msg("child.placeOfBirth.home", "Residential address")},
				{Value: PlaceOther, Label: msg("child.placeOfBirth.other", "Other")},
			},
		},
		{
			ID:           path("child.birthLocation"),
			Type:         form.TypeLocation,
			Required:     true,
			Label:        msg("child.birthLocation", "Health Institution"),
			Conditionals: []form.Conditional{form.Hide(placeOfBirth.IsUndefinedOrNotInArray(PlaceHealthFacility))},
		},
	}
	address := form.AppendConditionals(
		form.Prefix(form.AddressFields(table, CountryCode), path("child.address")),
		form.Hide(placeOfBirth.IsUndefinedOrNotInArray(PlacePrivateHome, PlaceOther)),
	)
	fields = append(fields, address...)
	return append(fields, form.Field{ID: path("child.weightAtBirth"), Type: form.TypeText, Label: msg("child.weightAtBirth", "Weight at birth")})
}

func informant(table *countries.Table) []form.Field {
	relationOptions := []form.Option{
		{Value: RelationMother, Label: msg("informant.relation.mother", "Mother")},
		{Value: RelationFather, Label: msg("informant.relation.father", "Father")},
		{Value: RelationGrandmother, Label: msg("informant.relation.grandmother", "Grandmother")},
		{Value: RelationGrandfather, Label: msg("informant.relation.grandfather", "Grandfather")},
		{Value: RelationBrother, Label: msg("informant.relation.brother", "Brother")},
		{Value: RelationSister, Label: msg("informant.relation.sister", "Sister")},
		{Value: RelationLegalGuardian, Label: msg("informant.relation.guardian", "Legal guardian")},
		{Value: RelationSomeoneElse, Label: msg("informant.relation.other", "Someone else")},
	}
	fields := []form.Field{
		{ID: path("informant.relation"), Type: form.TypeSelect, Required: true, Label: msg("informant.relation", "Relationship to child"), Options: relationOptions},
		{
			ID:           path("informant.other.relation"),
			Type:         form.TypeText,
			Required:     true,
			Label:        msg("informant.other.relation", "Relationship to child"),
			Conditionals: []form.Conditional{form.Hide(relation.IsUndefinedOrNotInArray(RelationSomeoneElse))},
		},
		{ID: path("informant.phoneNo"), Type: form.TypeText, Label: msg("informant.phoneNo", "Phone number")},
		{ID: path("informant.email"), Type: form.TypeEmail, Required: true, Label: msg("informant.email", "Email")},
	}

	// The mother and father pages already capture a parent informant.
	notParent := form.Hide(relation.IsUndefinedOrInArray(RelationMother, RelationFather))
	fields = append(fields, form.AppendConditionals(form.Prefix(form.PersonFields(table), path("informant")), notParent)...)
	fields = append(fields, form.AppendConditionals(form.Prefix(form.AddressFields(table, CountryCode), path("informant.address")), notParent)...)
	return fields
}

func mother(table *countries.Table) []form.Field {
	fields := []form.Field{
		{
			ID:           path("mother.detailsNotAvailable"),
			Type:         form.TypeCheckbox,
			Label:        msg("mother.detailsNotAvailable", "Mother's details are not available"),
			Conditionals: []form.Conditional{form.Hide(relation.IsInArray(RelationMother))},
		},
		{
			ID:           path("mother.reason"),
			Type:         form.TypeText,
			Required:     true,
			Label:        msg("mother.reason", "Reason"),
			Conditionals: []form.Conditional{form.Hide(predicate.Not(motherMissing.IsEqualTo(true)))},
		},
	}
	hideMissing := form.Hide(motherMissing.IsEqualTo(true))
	fields = append(fields, form.AppendConditionals(form.Prefix(form.PersonFields(table), path("mother")), hideMissing)...)
	fields = append(fields, form.AppendConditionals(form.Prefix(form.AddressFields(table, CountryCode), path("mother.address")), hideMissing)...)
	return fields
}

// father mirrors mother, except that the "details not available" checkbox
// stays hidden until the informant relation is answered.
func father(table *countries.Table) []form.Field {
	fields := []form.Field{
		{
			ID:           path("father.detailsNotAvailable"),
			Type:         form.TypeCheckbox,
			Label:        msg("father.detailsNotAvailable", "Father's details are not available"),
			Conditionals: []form.Conditional{form.Hide(relation.IsUndefinedOrInArray(RelationFather))},
		},
		{
			ID:           path("father.reason"),
			Type:         form.TypeText,
			Required:     true,
			Label:        msg("father.reason", "Reason"),
			Conditionals: []form.Conditional{form.Hide(predicate.Not(fatherMissing.IsEqualTo(true)))},
		},
	}
	hideMissing := form.Hide(fatherMissing.IsEqualTo(true))
	fields = append(fields, form.AppendConditionals(form.Prefix(form.PersonFields(table), path("father")), hideMissing)...)

	fields = append(fields, form.AppendConditionals([]form.Field{{
		ID:       path("father.addressSameAsMother"),
		Type:     form.TypeRadioGroup,
		Required: true,
		Label:    msg("father.addressSameAsMother", "Same as mother's usual place of residence?"),
		Options: []form.Option{
			{Value: Yes, Label: msg("yes", "Yes")},
			{Value: No, Label: msg("no", "No")},
		},
		Default: Yes,
	}}, hideMissing, form.Hide(motherMissing.IsEqualTo(true)))...)

	// The father's own address is asked for when the mother's address is
	// unavailable or explicitly different.
	sharesMotherAddress := predicate.And(
		predicate.Not(motherMissing.IsEqualTo(true)),
		sameAsMother.IsUndefinedOrNotInArray(No),
	)
	address := form.AppendConditionals(
		form.Prefix(form.AddressFields(table, CountryCode), path("father.address")),
		hideMissing,
		form.Hide(sharesMotherAddress),
	)
	return append(fields, address...)
}

func documents() []form.Field {
	return []form.Field{
		{ID: path("documents.proofOfBirth"), Type: form.TypeFile, Label: msg("documents.proofOfBirth", "Proof of birth")},
		{
			ID:           path("documents.proofOfMother"),
			Type:         form.TypeFile,
			Label:        msg("documents.proofOfMother", "Proof of mother's ID"),
			Conditionals: []form.Conditional{form.Hide(motherMissing.IsEqualTo(true))},
		},
		{
			ID:           path("documents.proofOther"),
			Type:         form.TypeFile,
			Label:        msg("documents.proofOther", "Other"),
			Conditionals: []form.Conditional{form.Hide(relation.IsUndefinedOrInArray(RelationMother, RelationFather))},
		},
	}
}

func correction() []form.Field {
	return []form.Field{
		{
			ID:           path("correction.reason"),
			Type:         form.TypeText,
			Required:     true,
			Label:        msg("correction.reason", "Reason for correction"),
			Conditionals: []form.Conditional{form.Hide(predicate.Not(predicate.EventHasAction(action.Register)))},
		},
	}
}
