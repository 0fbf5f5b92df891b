// Package validator provides small, composable validation rules.
//
// A Rule pairs a check with the ValidationError reported when the check
// fails. Apply evaluates rules in order and collects every failure:
//
//	err := validator.Apply(
//		validator.RequiredString("name", in.Name),
//		validator.ValidEmail("email", in.Email),
//		validator.MaxRunes("message", in.Message, 5000),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		fmt.Println(errs.First().Message)
//	}
//
// Messages are user facing. Use Rule.WithMessage to replace the default
// text with a form specific one.
package validator
