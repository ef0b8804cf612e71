package notifications

import (
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/vuminhngo/techstore-backend/pkg/config"
)

func TestSMTPSendTimesOutOnSilentRelay(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	// Accept the connection but never send the SMTP greeting; the read
	// returns once the client gives up and closes.
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1)
		_, _ = conn.Read(buf)
	}()

	addr := ln.Addr().(*net.TCPAddr)
	sender := NewSMTPSender(config.SMTPConfig{
		Host: addr.IP.String(),
		Port: addr.Port,
		From: "shop@techstore.vn",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = sender.Send(ctx, Email{To: "minh@example.com", Subject: "x", HTML: "<p>x</p>"})
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected an error from a relay that never greets")
	}
	if elapsed > 2*time.Second {
		t.Fatalf("send ignored the context deadline, took %s", elapsed)
	}
}

func TestSMTPSendRejectsMissingRecipient(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{Host: "mail.local", Port: 25, From: "shop@techstore.vn"})

	if err := sender.Send(context.Background(), Email{Subject: "x"}); err == nil {
		t.Fatal("expected an error for an empty recipient")
	}
}

func TestSMTPMessageHeaders(t *testing.T) {
	sender := NewSMTPSender(config.SMTPConfig{Host: "mail.local", Port: 587, From: "shop@techstore.vn"})

	msg := sender.buildMessage(Email{
		To:      "minh@example.com",
		Subject: "Đơn hàng",
		HTML:    "<p>xin chào</p>",
	})

	for _, want := range []string{
		"From: shop@techstore.vn\r\n",
		"To: minh@example.com\r\n",
		"Subject: Đơn hàng\r\n",
		"Content-Type: text/html; charset=UTF-8\r\n",
		"\r\n\r\n<p>xin chào</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %s in:\n%s", strconv.Quote(want), msg)
		}
	}
}
