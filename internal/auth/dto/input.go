package dto

type RegisterInput struct {
	Username        string `validate:"notblank"`
	Email           string `validate:"notblank,contains=@,contains=."`
	Password        string `validate:"notblank,min=8"`
	ConfirmPassword string `validate:"notblank,eqfield=Password"`
	AcceptedTerms   bool   `validate:"eq=true"`
}

type LoginInput struct {
	Username string `validate:"notblank"`
	Password string `validate:"notblank"`
}
