package printer

import (
	"bufio"
	"context"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemLineKeepsAmountOnLine(t *testing.T) {
	doc := NewDocument(32)
	doc.ItemLine("1.5", "Paneer Butter Masala With Extra Gravy", "270.00")

	out := string(doc.Bytes()[2:]) // skip ESC @
	line := strings.TrimSuffix(out, "\n")
	assert.Len(t, line, 32)
	assert.True(t, strings.HasSuffix(line, " 270.00"))
	assert.True(t, strings.HasPrefix(line, "1.5 x Paneer"))
}

func TestKeyValue(t *testing.T) {
	doc := NewDocument(20)
	doc.KeyValue("Total", "336.00")
	assert.Equal(t, "Total"+strings.Repeat(" ", 9)+"336.00\n", string(doc.Bytes()[2:]))
}

func TestNewRejectsUnknownType(t *testing.T) {
	_, err := New(Config{Type: "bluetooth"})
	assert.Error(t, err)

	_, err = New(Config{Type: "usb"})
	assert.Error(t, err)

	p, err := New(Config{})
	require.NoError(t, err)
	assert.IsType(t, &Buffer{}, p)
}

func TestNetworkPrinterWritesJob(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(bufio.NewReader(conn))
		received <- string(data)
	}()

	p, err := New(Config{Type: "network", Address: ln.Addr().String()})
	require.NoError(t, err)
	require.NoError(t, p.Print(context.Background(), []byte("receipt")))
	assert.Equal(t, "receipt", <-received)
}

func TestBufferKeepsLastJob(t *testing.T) {
	b := &Buffer{}
	require.NoError(t, b.Print(context.Background(), []byte("one")))
	require.NoError(t, b.Print(context.Background(), []byte("two")))
	last, jobs := b.Last()
	assert.Equal(t, "two", string(last))
	assert.Equal(t, 2, jobs)
}
