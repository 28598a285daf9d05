package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	recording := &RecordingAPI{}
	scoped := NewScopedAPI("outer", NewScopedAPI("inner", recording))

	scoped.ReportBroken("client.login", "boom")
	scoped.ReportWarning("account.gender")
	scoped.ReportCount("pages", 3)

	broken := recording.Reports("broken")
	require.Len(t, broken, 1)
	require.Equal(t, "inner: outer: client.login", broken[0].Id)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	require.True(t, recording.Has("warning", "account.gender"))
	require.False(t, recording.Has("broken", "account.gender"))
	require.Equal(t, []any{int64(3)}, recording.Reports("count")[0].Params)
	require.Len(t, recording.Reports(""), 3)
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	recording := &RecordingAPI{}
	client := resty.New()
	InstrumentResty(client, "test", recording)

	res, err := client.R().Get(server.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusTeapot, res.StatusCode())

	require.True(t, recording.Has("debug", report_resty_request))
	require.True(t, recording.Has("debug", report_resty_response))
	require.Empty(t, recording.Reports("broken"))
}

func TestInstrumentRestyError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	recording := &RecordingAPI{}
	client := resty.New()
	InstrumentResty(client, "test", recording)

	_, err := client.R().Get(url)
	require.Error(t, err)
	require.True(t, recording.Has("broken", report_resty_response))
}

func TestOtlpConnConfig(t *testing.T) {
	require.False(t, OtlpConnConfig{}.Enabled())

	grpc := OtlpConnConfig{GrpcEndpoint: "http://127.0.0.1:4317", HttpEndpoint: "http://127.0.0.1:4318"}
	require.True(t, grpc.Enabled())
	require.Equal(t, "grpc", grpc.transport())

	httpOnly := OtlpConnConfig{HttpEndpoint: "http://127.0.0.1:4318"}
	require.True(t, httpOnly.Enabled())
	require.Equal(t, "http", httpOnly.transport())
}

func TestSetupWithoutEndpoints(t *testing.T) {
	tel, err := Setup(context.Background(), "test", Config{})
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)
	require.NotNil(t, tel.MeterProvider)

	_, span := tel.TracerProvider.Tracer("test").Start(context.Background(), "span")
	span.End()

	require.NoError(t, tel.Shutdown(context.Background()))
}
