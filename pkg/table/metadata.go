package table

import (
	"fmt"
	"slices"

	"github.com/mithrel/perktable/pkg/api"
)

const (
	FieldCareerPage           = "career_page"
	FieldStrikeOut            = "strike_out"
	FieldGlassdoorLink        = "glassdoor__link"
	FieldSoftwareEngineerLink = "software_engineer__link"
)

// MetadataFields lists the record paths copied into api.Metadata.
var MetadataFields = []string{
	FieldCareerPage,
	FieldStrikeOut,
	FieldGlassdoorLink,
	FieldSoftwareEngineerLink,
}

// linkTargets maps a column namespace to the metadata field that holds the
// link its cells are wrapped in.
var linkTargets = map[string]string{
	"glassdoor":         FieldGlassdoorLink,
	"software_engineer": FieldSoftwareEngineerLink,
	"key":               FieldCareerPage,
}

func init() {
	if err := checkLinkTargets(linkTargets); err != nil {
		panic(err)
	}
}

func checkLinkTargets(targets map[string]string) error {
	for ns, field := range targets {
		if !slices.Contains(MetadataFields, field) {
			return fmt.Errorf("table: link namespace %q points at unknown metadata field %q", ns, field)
		}
		if ns == "" || Namespace(ns) != ns {
			return fmt.Errorf("table: link namespace %q must be a single path segment", ns)
		}
	}
	return nil
}

// LinkField returns the metadata field linked to column id, if any.
func LinkField(id string) (string, bool) {
	field, ok := linkTargets[Namespace(id)]
	return field, ok
}

// ExtractMetadata resolves the metadata fields of rec. Missing fields are
// Absent; it never fails.
func ExtractMetadata(rec api.Record) api.Metadata {
	get := func(field string) api.Value {
		return api.FromAny(Resolve(field, rec))
	}
	return api.Metadata{
		CareerPage:           get(FieldCareerPage),
		StrikeOut:            flag(Resolve(FieldStrikeOut, rec)),
		GlassdoorLink:        get(FieldGlassdoorLink),
		SoftwareEngineerLink: get(FieldSoftwareEngineerLink),
	}
}

// MetadataField returns the named field of md.
func MetadataField(md api.Metadata, field string) api.Value {
	switch field {
	case FieldCareerPage:
		return md.CareerPage
	case FieldStrikeOut:
		return md.StrikeOut
	case FieldGlassdoorLink:
		return md.GlassdoorLink
	case FieldSoftwareEngineerLink:
		return md.SoftwareEngineerLink
	default:
		return api.Absent()
	}
}

// flag reduces a strike-out marker of any type to a Bool, keeping Absent
// for a missing field.
func flag(x any) api.Value {
	if x == nil {
		return api.Absent()
	}
	return api.Bool(truthy(x))
}
