package cefetaluno

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckCpaStatus(t *testing.T) {
	blocked := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", DefaultCpaOrigin+"/aluno/")
		w.WriteHeader(http.StatusFound)
	}))
	t.Cleanup(blocked.Close)

	open := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>login</body></html>`)
	}))
	t.Cleanup(open.Close)

	unreachable := httptest.NewServer(http.NotFoundHandler())
	unreachable.Close()

	require.True(t, CheckCpaStatus(context.Background(), ClientOptions{BaseUrl: blocked.URL}))
	require.False(t, CheckCpaStatus(context.Background(), ClientOptions{BaseUrl: open.URL}))
	require.False(t, CheckCpaStatus(context.Background(), ClientOptions{BaseUrl: unreachable.URL}))
}

func serveCpa(t *testing.T, issueToken bool, confirmation string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/aluno/", func(w http.ResponseWriter, r *http.Request) {
		if issueToken {
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok123", Path: "/"})
		}
		fmt.Fprint(w, `<html><body><form method="post" action="/aluno/validar/"></form></body></html>`)
	})
	mux.HandleFunc("/aluno/validar/", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "tok123", r.PostFormValue("csrfmiddlewaretoken"))
		require.Equal(t, "123.456.789-00", r.PostFormValue("cpf"))
		fmt.Fprint(w, confirmation)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestSubmitCpaId(t *testing.T) {
	server := serveCpa(t, true, `
		<html><body>
			<p>Para responder ao questionário clique <a href="/aluno/form/42">aqui</a>.</p>
		</body></html>`)

	link, err := SubmitCpaId(
		context.Background(),
		ClientOptions{CpaOrigin: server.URL},
		"123.456.789-00",
	)
	require.NoError(t, err)
	require.Equal(t, server.URL+"/aluno/form/42", link)
}

func TestSubmitCpaIdMissingToken(t *testing.T) {
	server := serveCpa(t, false, "")

	_, err := SubmitCpaId(
		context.Background(),
		ClientOptions{CpaOrigin: server.URL},
		"123.456.789-00",
	)

	var manualErr *CpaManualError
	require.ErrorAs(t, err, &manualErr)
	require.Equal(t, server.URL+"/aluno/", manualErr.CpaUrl)
}

func TestSubmitCpaIdMissingLink(t *testing.T) {
	server := serveCpa(t, true, `<html><body><p>obrigado</p></body></html>`)

	_, err := SubmitCpaId(
		context.Background(),
		ClientOptions{CpaOrigin: server.URL},
		"123.456.789-00",
	)

	var manualErr *CpaManualError
	require.ErrorAs(t, err, &manualErr)
}
