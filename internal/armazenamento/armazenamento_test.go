package armazenamento

import "testing"

func TestConectarExigeEndpointEBucket(t *testing.T) {
	if _, err := Conectar(Parametros{Bucket: "b"}); err == nil {
		t.Error("esperava erro sem endpoint")
	}
	if _, err := Conectar(Parametros{Endpoint: "localhost:9000"}); err == nil {
		t.Error("esperava erro sem bucket")
	}
}

func TestConectarNaoAcessaRede(t *testing.T) {
	s, err := Conectar(Parametros{Endpoint: "localhost:9000", Bucket: "exportacoes", AccessKey: "a", SecretKey: "b"})
	if err != nil {
		t.Fatalf("Conectar: %v", err)
	}
	if s.Bucket != "exportacoes" || s.Client == nil {
		t.Errorf("S3 = %+v", s)
	}
}
