package usecase

// UseCase is an approved catalog row. Only SuccessCriterion changes after
// creation.
type UseCase struct {
	id               int64
	name             string
	product          string
	successCriterion string
	measurement      string
}

func New(name, product, successCriterion, measurement string) UseCase {
	return UseCase{
		name:             name,
		product:          product,
		successCriterion: successCriterion,
		measurement:      measurement,
	}
}

func Hydrate(id int64, name, product, successCriterion, measurement string) UseCase {
	return UseCase{
		id:               id,
		name:             name,
		product:          product,
		successCriterion: successCriterion,
		measurement:      measurement,
	}
}

func (u UseCase) ID() int64                { return u.id }
func (u UseCase) Name() string             { return u.name }
func (u UseCase) Product() string          { return u.product }
func (u UseCase) SuccessCriterion() string { return u.successCriterion }
func (u UseCase) Measurement() string      { return u.measurement }
func (u UseCase) IsZero() bool             { return u.id == 0 && u.name == "" }

func (u UseCase) SetSuccessCriterion(criterion string) UseCase {
	u.successCriterion = criterion
	return u
}
