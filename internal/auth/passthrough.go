package auth

import "context"

type passThroughGate struct{}

// NewPassThroughGate returns a gate that admits every request.
func NewPassThroughGate() Gate {
	return passThroughGate{}
}

func (passThroughGate) Verify(context.Context, string) (*Principal, error) {
	return &Principal{Subject: "anonymous"}, nil
}

func (passThroughGate) RequireRole(*Principal, string) error {
	return nil
}

func (passThroughGate) Enforcing() bool {
	return false
}
