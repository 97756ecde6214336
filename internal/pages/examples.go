package pages

import (
	"context"

	"github.com/jonathan/internship-generator/internal/types"
)

// ExampleForm is the editable writing sample.
type ExampleForm struct {
	GenerationType types.GenerationType
	Title          string
	Content        string
	QualityRating  float64
	Notes          string
}

// NewExampleForm returns an empty form with the default type and rating.
func NewExampleForm() ExampleForm {
	return ExampleForm{
		GenerationType: types.GenerationColdEmail,
		QualityRating:  types.DefaultQualityRating,
	}
}

// Input converts the form into the create/update payload.
func (f *ExampleForm) Input() types.ExampleInput {
	return types.ExampleInput{
		GenerationType: f.GenerationType,
		Content:        f.Content,
		QualityRating:  f.QualityRating,
		Title:          f.Title,
		Notes:          f.Notes,
	}
}

// ExamplesPage controls the examples screen with an optional category filter.
type ExamplesPage struct {
	api     ExampleAPI
	confirm Confirmer

	Form ExampleForm

	filter    types.GenerationType
	examples  []types.Example
	editingID int64
	phase     Phase
	status    Status
}

// NewExamplesPage creates an examples controller. A nil confirm approves
// every deletion.
func NewExamplesPage(client ExampleAPI, confirm Confirmer) *ExamplesPage {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &ExamplesPage{api: client, confirm: confirm, Form: NewExampleForm()}
}

// Examples returns the last fetched list.
func (p *ExamplesPage) Examples() []types.Example { return p.examples }

// Filter returns the active category filter; empty means all categories.
func (p *ExamplesPage) Filter() types.GenerationType { return p.filter }

// Phase returns the state of the last action.
func (p *ExamplesPage) Phase() Phase { return p.phase }

// Status returns the last status message.
func (p *ExamplesPage) Status() Status { return p.status }

// Load fetches the examples matching the active filter.
func (p *ExamplesPage) Load(ctx context.Context) error {
	return p.load(ctx, p.filter)
}

// SetFilter re-fetches with a new category filter. The filter only changes
// once the fetch succeeds.
func (p *ExamplesPage) SetFilter(ctx context.Context, filter types.GenerationType) error {
	if filter != "" && !filter.Valid() {
		return &ValidationError{Message: "Unknown generation type: " + string(filter)}
	}
	return p.load(ctx, filter)
}

func (p *ExamplesPage) load(ctx context.Context, filter types.GenerationType) error {
	examples, err := p.api.List(ctx, filter)
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}
	p.filter = filter
	p.examples = examples
	return nil
}

// Edit seeds the form with an existing example.
func (p *ExamplesPage) Edit(ctx context.Context, id int64) error {
	ex, err := p.api.Get(ctx, id)
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}
	p.editingID = ex.ID
	p.Form = ExampleForm{
		GenerationType: ex.GenerationType,
		Title:          ex.Title,
		Content:        ex.Content,
		QualityRating:  ex.QualityRating,
		Notes:          ex.Notes,
	}
	return nil
}

// CancelEdit resets the form to its defaults.
func (p *ExamplesPage) CancelEdit() {
	p.editingID = 0
	p.Form = NewExampleForm()
}

// Submit creates or updates depending on whether an example is being edited.
func (p *ExamplesPage) Submit(ctx context.Context) error {
	if p.editingID != 0 {
		return p.Update(ctx)
	}
	return p.Create(ctx)
}

// Create adds the form as a new example.
func (p *ExamplesPage) Create(ctx context.Context) error {
	return p.save(ctx, "Example added successfully!", func(in *types.ExampleInput) error {
		_, err := p.api.Create(ctx, in)
		return err
	})
}

// Update saves the form onto the example being edited.
func (p *ExamplesPage) Update(ctx context.Context) error {
	if p.editingID == 0 {
		return &ValidationError{Message: "No example selected for editing"}
	}
	id := p.editingID
	return p.save(ctx, "Example updated successfully!", func(in *types.ExampleInput) error {
		_, err := p.api.Update(ctx, id, in)
		return err
	})
}

func (p *ExamplesPage) save(ctx context.Context, msg string, call func(*types.ExampleInput) error) error {
	if p.phase == PhaseLoading {
		return ErrBusy
	}

	in := p.Form.Input()
	if err := in.Validate(); err != nil {
		verr := validationError(err)
		p.status = Status{Text: verr.Error(), IsError: true}
		return verr
	}

	p.phase = PhaseLoading
	p.status = Status{}

	err := call(&in)
	if err == nil {
		err = p.Load(ctx)
	}
	if err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return err
	}

	p.CancelEdit()
	p.phase = PhaseDone
	p.status = okStatus(msg)
	return nil
}

// Delete removes an example after confirmation and re-fetches the list.
// It reports false when the user declined or the delete failed; a failed
// re-fetch after a successful delete still reports true.
func (p *ExamplesPage) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := p.confirm.Confirm("Are you sure you want to delete this example?")
	if err != nil || !ok {
		return false, err
	}

	if err := p.api.Delete(ctx, id); err != nil {
		p.phase = PhaseError
		p.status = errStatus("Error: ", err)
		return false, err
	}
	if p.editingID == id {
		p.CancelEdit()
	}
	if err := p.Load(ctx); err != nil {
		return true, err
	}

	p.phase = PhaseDone
	p.status = okStatus("Example deleted successfully!")
	return true, nil
}
