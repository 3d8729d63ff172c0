package mailer

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSend_ErrorsWhenUnconfigured(t *testing.T) {
	m := New("smtp.example.com", "587", "", "")
	require.Error(t, m.Send("dev@example.com", "Hello", "<p>hi</p>"))
}

func TestSend_RejectsRecipientWithNewlines(t *testing.T) {
	m := New("smtp.example.com", "587", "pm@example.com", "secret")
	err := m.Send("dev@example.com\r\nBcc: sneaky@example.com", "Hello", "<p>hi</p>")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid recipient")
}

func TestSend_TimesOutOnSilentRelay(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	// Accept the connection and never send the greeting.
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		time.Sleep(5 * time.Second)
	}()

	host, port, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)

	m := New(host, port, "pm@example.com", "secret")
	m.timeout = 200 * time.Millisecond

	start := time.Now()
	err = m.Send("dev@example.com", "Hello", "<p>hi</p>")
	require.Error(t, err)
	require.Less(t, time.Since(start), 3*time.Second)
}

func TestHeaderValue_StripsCRLF(t *testing.T) {
	require.Equal(t, "Task A Bcc: x", headerValue("Task A\r\nBcc: x"))
	require.Equal(t, "plain", headerValue("plain"))
}
