package validate

import "testing"

func TestCheck(t *testing.T) {
	type in struct {
		Email string `validate:"required,email"`
		Age   int    `validate:"gte=0,lte=1"`
	}

	if err := Check(in{Email: "abc@gmail.com", Age: 1}); err != nil {
		t.Fatalf("valid struct rejected: %v", err)
	}

	if err := Check(in{Email: "not-an-email", Age: 0}); err == nil {
		t.Fatal("invalid email accepted")
	}

	if err := Check(in{Email: "abc@gmail.com", Age: 2}); err == nil {
		t.Fatal("out-of-range value accepted")
	}
}

func TestCheckID(t *testing.T) {
	if err := CheckID(GenerateID()); err != nil {
		t.Fatalf("generated id rejected: %v", err)
	}

	if err := CheckID("not-a-uuid"); err == nil {
		t.Fatal("malformed id accepted")
	}
}
