package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"pilgrim-testimonies/internal/domain"
	"pilgrim-testimonies/internal/pkg/i18n"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s\x{00C0}-\x{017F}.\-]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
	// Permissive single-@ shape, deliberately not RFC 5322.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	phoneSeparators = strings.NewReplacer("(", "", ")", "", "-", "", " ", "", "\t", "")
)

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"video/mp4":  true,
	"video/webm": true,
	"audio/mpeg": true,
	"audio/mp4":  true,
	"audio/wav":  true,
	"audio/ogg":  true,
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	return &Validator{v: v}
}

// Submission checks a normalized submission against the form rules. The
// honeypot is special-cased: its presence returns domain.ErrHoneypot so the
// caller can reject silently, with no field errors that would tip off bots.
// All other failures come back as a ValidationError with messages localized
// to the submission language.
func (val *Validator) Submission(sub *domain.Submission) error {
	if sub.Honeypot != "" {
		return domain.ErrHoneypot
	}

	fields := map[string]string{}
	locale := sub.Language

	if err := val.v.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				name, msg := submissionMessage(locale, fe)
				if _, seen := fields[name]; !seen {
					fields[name] = msg
				}
			}
		} else {
			return err
		}
	}

	if _, seen := fields["name"]; !seen && sub.Name != "" && !namePattern.MatchString(sub.Name) {
		fields["name"] = i18n.Translate(locale, "NAME_PATTERN")
	}

	if !sub.Consent {
		fields["consent"] = i18n.Translate(locale, "CONSENT_REQUIRED")
	}

	for _, f := range sub.Media {
		if !allowedMediaTypes[f.Type] {
			fields["media"] = i18n.Translate(locale, "MEDIA_TYPE_INVALID")
			break
		}
		kind := f.Kind()
		if f.DecodedSize() > kind.MaxBytes() {
			fields["media"] = i18n.Translate(locale, "MEDIA_TOO_LARGE", kind.MaxBytes()/(1024*1024))
			break
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Lead checks a contact-form lead. The honeypot behaves as in Submission.
func (val *Validator) Lead(lead *domain.Lead, locale string) error {
	if lead.Honeypot != "" {
		return domain.ErrHoneypot
	}

	fields := map[string]string{}

	if err := val.v.Struct(lead); err != nil {
		var verrs validator.ValidationErrors
		if ok := asValidationErrors(err, &verrs); ok {
			for _, fe := range verrs {
				name, msg := leadMessage(locale, fe)
				if _, seen := fields[name]; !seen {
					fields[name] = msg
				}
			}
		} else {
			return err
		}
	}

	if _, seen := fields["phone"]; !seen && lead.Phone != "" && !ValidPhone(lead.Phone) {
		fields["phone"] = i18n.Translate(locale, "PHONE_INVALID")
	}

	if !lead.ConsentContact {
		fields["consentContact"] = i18n.Translate(locale, "CONSENT_REQUIRED")
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ValidPhone strips the usual separators before matching, so values like
// "+57 (300) 123-4567" pass.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phoneSeparators.Replace(phone))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// submissionMessage maps a failed rule to its localized message. Whitespace-only
// values are trimmed at normalization, so "required" already covers them.
func submissionMessage(locale string, fe validator.FieldError) (string, string) {
	field := jsonFieldName(fe.Field())
	prefix := messagePrefix(field)

	switch fe.Tag() {
	case "required":
		return field, i18n.Translate(locale, prefix+"_REQUIRED")
	case "min":
		return field, i18n.Translate(locale, prefix+"_MIN", paramInt(fe.Param()))
	case "max":
		return field, i18n.Translate(locale, prefix+"_MAX", paramInt(fe.Param()))
	case "email":
		return field, i18n.Translate(locale, "EMAIL_INVALID")
	default:
		return field, i18n.Translate(locale, "FIELD_INVALID")
	}
}

func leadMessage(locale string, fe validator.FieldError) (string, string) {
	field := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return field, i18n.Translate(locale, "FIELD_REQUIRED")
	case "email":
		return field, i18n.Translate(locale, "EMAIL_INVALID")
	default:
		return field, i18n.Translate(locale, "FIELD_INVALID")
	}
}

func messagePrefix(field string) string {
	switch field {
	case "name":
		return "NAME"
	case "trip":
		return "TRIP"
	case "testimony":
		return "TESTIMONY"
	default:
		return "FIELD"
	}
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Trip":
		return "trip"
	case "Narrative":
		return "testimony"
	case "Email":
		return "email"
	case "Language":
		return "language"
	case "FirstName":
		return "firstName"
	case "LastName":
		return "lastName"
	case "Phone":
		return "phone"
	case "PreferredContact":
		return "preferredContact"
	case "PilgrimageInterest":
		return "pilgrimageInterest"
	case "Message":
		return "message"
	default:
		return strings.ToLower(structField[:1]) + structField[1:]
	}
}

// paramInt is safe for the tags used here; min/max params are always numeric.
func paramInt(p string) int {
	n, _ := strconv.Atoi(p)
	return n
}
