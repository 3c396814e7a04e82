package db

import (
	"context"
	"testing"
)

func TestMontarDSN(t *testing.T) {
	got := montarDSN(Parametros{Host: "db", Port: 5433, Nome: "comissio", Usuario: "app", Senha: "s3cr3t", SSLDisable: true})
	want := "host=db user=app password=s3cr3t dbname=comissio port=5433 sslmode=disable"
	if got != want {
		t.Errorf("montarDSN = %q, want %q", got, want)
	}
}

func TestRetrieveCredentialsFromEnv(t *testing.T) {
	u, p, err := retrieveCredentials(context.Background(), "app", "senha", "ignored")
	if err != nil || u != "app" || p != "senha" {
		t.Errorf("got %q %q %v", u, p, err)
	}

	if _, _, err := retrieveCredentials(context.Background(), "", "", ""); err == nil {
		t.Error("expected error without credentials")
	}
}

func TestParseCredentials(t *testing.T) {
	u, p, err := parseCredentials([]byte(`{"username":"admin","password":"x"}`))
	if err != nil || u != "admin" || p != "x" {
		t.Errorf("got %q %q %v", u, p, err)
	}
	if _, _, err := parseCredentials([]byte(`{"username":"admin"}`)); err == nil {
		t.Error("expected error for missing password")
	}
	if _, _, err := parseCredentials([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid json")
	}
}
