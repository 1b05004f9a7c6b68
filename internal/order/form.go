package order

import "sync"

// Form tracks inline validation state for the checkout form. A field is
// validated on blur; once it is marked invalid every keystroke re-validates
// it until it passes.
type Form struct {
	mu       sync.Mutex
	messages map[Field]string
}

func NewForm() *Form {
	return &Form{messages: make(map[Field]string)}
}

func (f *Form) Blur(field Field, value string) (bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.check(field, value)
}

// Input re-validates only fields currently marked invalid. For other fields
// it reports the field as valid without running its rule.
func (f *Form) Input(field Field, value string) (bool, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, invalid := f.messages[field]; !invalid {
		return true, ""
	}
	return f.check(field, value)
}

// Submit validates every field and marks the failing ones.
func (f *Form) Submit(c CustomerInfo) Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := ValidateAll(c)
	for field, msg := range v.Messages {
		f.set(field, msg)
	}
	return v
}

func (f *Form) Message(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[field]
}

func (f *Form) check(field Field, value string) (bool, string) {
	ok, msg := ValidateField(field, value)
	f.set(field, msg)
	return ok, msg
}

func (f *Form) set(field Field, msg string) {
	if msg == "" {
		delete(f.messages, field)
		return
	}
	f.messages[field] = msg
}
