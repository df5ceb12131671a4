package form

import (
	"github.com/goliatone/go-formcond/pkg/countries"
	"github.com/goliatone/go-formcond/pkg/fieldpath"
	"github.com/goliatone/go-formcond/pkg/message"
	"github.com/goliatone/go-formcond/pkg/predicate"
)

// Reusable fragments use relative ids; instantiate them with Prefix.

// Identity document types offered by PersonFields.
const (
	IDTypeNationalID = "NATIONAL_ID"
	IDTypePassport   = "PASSPORT"
	IDTypeBRN        = "BIRTH_REGISTRATION_NUMBER"
	IDTypeNone       = "NONE"
)

// Settlement types offered by the structured address variant.
const (
	SettlementUrban = "URBAN"
	SettlementRural = "RURAL"
)

// Message ids shared by the fragments.
var (
	MsgDateInFuture = message.New("form.validation.dateInFuture", "Date must be in the past")
)

// CountryOptions lists table entries as select options.
func CountryOptions(table *countries.Table) []Option {
	if table == nil {
		table = countries.ISO()
	}
	list := table.List()
	out := make([]Option, len(list))
	for i, c := range list {
		out[i] = Option{Value: c.Code, Label: message.New("countries."+c.Code, c.Name)}
	}
	return out
}

// PersonFields is the identity block shared by every person on a form.
func PersonFields(table *countries.Table) []Field {
	idType := predicate.Field("$.idType")
	return []Field{
		{
			ID:       fieldpath.MustParse("$.firstname"),
			Type:     TypeText,
			Required: true,
			Label:    message.New("form.person.firstname", "First name(s)"),
		},
		{
			ID:       fieldpath.MustParse("$.surname"),
			Type:     TypeText,
			Required: true,
			Label:    message.New("form.person.surname", "Last name"),
		},
		{
			ID:       fieldpath.MustParse("$.dob"),
			Type:     TypeDate,
			Required: true,
			Label:    message.New("form.person.dob", "Date of birth"),
			Validation: []ValidationRule{
				{Predicate: predicate.Field("$.dob").IsBeforeNow(), Message: MsgDateInFuture},
			},
		},
		{
			ID:       fieldpath.MustParse("$.nationality"),
			Type:     TypeSelect,
			Required: true,
			Label:    message.New("form.person.nationality", "Nationality"),
			Options:  CountryOptions(table),
		},
		{
			ID:       fieldpath.MustParse("$.idType"),
			Type:     TypeSelect,
			Required: true,
			Label:    message.New("form.person.idType", "Type of ID"),
			Options: []Option{
				{Value: IDTypeNationalID, Label: message.New("form.person.idType.nid", "National ID")},
				{Value: IDTypePassport, Label: message.New("form.person.idType.passport", "Passport")},
				{Value: IDTypeBRN, Label: message.New("form.person.idType.brn", "Birth Registration Number")},
				{Value: IDTypeNone, Label: message.New("form.person.idType.none", "None")},
			},
		},
		{
			ID:           fieldpath.MustParse("$.nid"),
			Type:         TypeText,
			Required:     true,
			Label:        message.New("form.person.nid", "ID Number"),
			Conditionals: []Conditional{Hide(predicate.Not(idType.IsEqualTo(IDTypeNationalID)))},
		},
		{
			ID:           fieldpath.MustParse("$.passport"),
			Type:         TypeText,
			Required:     true,
			Label:        message.New("form.person.passport", "Passport number"),
			Conditionals: []Conditional{Hide(predicate.Not(idType.IsEqualTo(IDTypePassport)))},
		},
		{
			ID:           fieldpath.MustParse("$.brn"),
			Type:         TypeText,
			Required:     true,
			Label:        message.New("form.person.brn", "Birth Registration Number"),
			Conditionals: []Conditional{Hide(predicate.Not(idType.IsEqualTo(IDTypeBRN)))},
		},
	}
}

// AddressFields is an address group branched on its own country field:
// homeCountry gets the structured administrative-area variant, every other
// country the free-form international variant.
func AddressFields(table *countries.Table, homeCountry string) []Field {
	country := fieldpath.MustParse("$.country")
	settlement := predicate.Field("$.urbanOrRural")

	selector := Field{
		ID:       country,
		Type:     TypeSelect,
		Required: true,
		Label:    message.New("form.address.country", "Country"),
		Options:  CountryOptions(table),
		Default:  homeCountry,
	}

	international := []Field{
		{ID: fieldpath.MustParse("$.state"), Type: TypeText, Required: true, Label: message.New("form.address.state", "State")},
		{ID: fieldpath.MustParse("$.district2"), Type: TypeText, Required: true, Label: message.New("form.address.district2", "District")},
		{ID: fieldpath.MustParse("$.cityOrTown"), Type: TypeText, Label: message.New("form.address.cityOrTown", "City / Town")},
		{ID: fieldpath.MustParse("$.addressLine1"), Type: TypeText, Label: message.New("form.address.addressLine1", "Address Line 1")},
		{ID: fieldpath.MustParse("$.postcodeOrZip"), Type: TypeText, Label: message.New("form.address.postcodeOrZip", "Postcode / Zip")},
	}

	structured := []Field{
		{ID: fieldpath.MustParse("$.province"), Type: TypeLocation, Required: true, Label: message.New("form.address.province", "Province")},
		{ID: fieldpath.MustParse("$.district"), Type: TypeLocation, Required: true, Label: message.New("form.address.district", "District")},
		{
			ID:    fieldpath.MustParse("$.urbanOrRural"),
			Type:  TypeRadioGroup,
			Label: message.New("form.address.urbanOrRural", "Urban or rural"),
			Options: []Option{
				{Value: SettlementUrban, Label: message.New("form.address.urban", "Urban")},
				{Value: SettlementRural, Label: message.New("form.address.rural", "Rural")},
			},
			Default: SettlementUrban,
		},
		{
			ID:           fieldpath.MustParse("$.town"),
			Type:         TypeText,
			Label:        message.New("form.address.town", "Town"),
			Conditionals: []Conditional{Hide(settlement.IsUndefinedOrNotInArray(SettlementUrban))},
		},
		{
			ID:           fieldpath.MustParse("$.residentialArea"),
			Type:         TypeText,
			Label:        message.New("form.address.residentialArea", "Residential Area"),
			Conditionals: []Conditional{Hide(settlement.IsUndefinedOrNotInArray(SettlementUrban))},
		},
		{
			ID:           fieldpath.MustParse("$.village"),
			Type:         TypeText,
			Label:        message.New("form.address.village", "Village"),
			Conditionals: []Conditional{Hide(settlement.IsUndefinedOrInArray(SettlementUrban))},
		},
	}

	out := []Field{selector}
	return append(out, CountryBranch(country, homeCountry, international, structured)...)
}
