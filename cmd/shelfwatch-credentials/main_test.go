package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"shelfwatch/internal/platform/testkit"
	creddom "shelfwatch/internal/services/credentials/domain"
	credmod "shelfwatch/internal/services/credentials/module"
)

type memAdmin struct {
	rows map[creddom.CategoryID]creddom.Credential
}

func (m *memAdmin) EnsureSchema(context.Context) error { return nil }

func (m *memAdmin) Put(_ context.Context, c creddom.Credential) error {
	if c.Category == "" {
		return errors.New("category is required")
	}
	c.UpdatedAt = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	m.rows[c.Category] = c
	return nil
}

func (m *memAdmin) List(context.Context) ([]creddom.CredentialInfo, error) {
	var out []creddom.CredentialInfo
	for _, c := range m.rows {
		out = append(out, creddom.CredentialInfo{Category: c.Category, UpdatedAt: c.UpdatedAt})
	}
	return out, nil
}

func (m *memAdmin) Delete(_ context.Context, cat creddom.CategoryID) error {
	delete(m.rows, cat)
	return nil
}

type handleResolver struct{}

func (handleResolver) Resolve(_ context.Context, cat creddom.CategoryID) (creddom.Account, error) {
	return creddom.Account{Category: cat, Handle: "bot_" + string(cat)}, nil
}

func TestDispatch(t *testing.T) {
	adm := &memAdmin{rows: map[creddom.CategoryID]creddom.Credential{}}
	p := credmod.Ports{Admin: adm, Resolver: handleResolver{}}
	ctx := context.Background()

	var out bytes.Buffer
	if err := dispatch(ctx, []string{"put", "-category", " Comics ", "-token", "t", "-secret", "s"}, p, &out); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := adm.rows["comics"]; !ok {
		t.Fatalf("put did not normalize category: %v", adm.rows)
	}

	out.Reset()
	if err := dispatch(ctx, []string{"list"}, p, &out); err != nil {
		t.Fatalf("list: %v", err)
	}
	testkit.MustContain(t, out.String(), "comics\t2024-05-01T00:00:00Z")

	out.Reset()
	if err := dispatch(ctx, []string{"verify", "-category", "comics"}, p, &out); err != nil {
		t.Fatalf("verify: %v", err)
	}
	testkit.MustContain(t, out.String(), "@bot_comics")

	if err := dispatch(ctx, []string{"delete", "-category", "comics"}, p, &out); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(adm.rows) != 0 {
		t.Fatalf("delete left %v", adm.rows)
	}
}

func TestDispatch_Usage(t *testing.T) {
	p := credmod.Ports{Admin: &memAdmin{rows: map[creddom.CategoryID]creddom.Credential{}}, Resolver: handleResolver{}}
	var out bytes.Buffer
	for _, args := range [][]string{nil, {"rotate"}} {
		if err := dispatch(context.Background(), args, p, &out); !errors.Is(err, errUsage) {
			t.Fatalf("%v: err = %v", args, err)
		}
	}
	if err := dispatch(context.Background(), []string{"delete"}, p, &out); err == nil {
		t.Fatal("delete without category should fail")
	}
	if err := dispatch(context.Background(), []string{"list", "-bogus"}, p, &out); err == nil {
		t.Fatal("unknown flag should fail")
	}
}
