package articleservice

import "github.com/sushihentaime/conduit/internal/common"

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(v.CheckStringLength(description, 1, 500), "description", "must not be more than 500 characters long")
}

func validateBody(v *common.Validator, body string) {
	v.Check(body != "", "body", "must be provided")
}

func validateTags(v *common.Validator, tags []string) {
	for _, tag := range tags {
		if tag == "" {
			v.AddError("tagList", "tags must not be blank")
			return
		}
	}
}

func validateCommentBody(v *common.Validator, body string) {
	v.Check(body != "", "body", "must be provided")
}
