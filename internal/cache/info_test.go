package cache

import "testing"

func TestParseInfo(t *testing.T) {
	raw := "# Server\r\nredis_version:7.2.4\r\nuptime_in_seconds:10\r\n\r\n" +
		"# Clients\r\nconnected_clients:3\r\n\r\n" +
		"# Memory\r\nused_memory:1048576\r\nused_memory_human:1.00M\r\n\r\n" +
		"# Stats\r\ntotal_commands_processed:42\r\n"

	st := parseInfo(raw)

	if !st.Connected {
		t.Fatal("expected connected")
	}
	if st.Version != "7.2.4" {
		t.Errorf("version = %q", st.Version)
	}
	if st.UsedMemory != "1.00M" {
		t.Errorf("used memory = %q", st.UsedMemory)
	}
	if st.ConnectedClients != 3 {
		t.Errorf("connected clients = %d", st.ConnectedClients)
	}
	if st.TotalCommandsProcessed != 42 {
		t.Errorf("total commands = %d", st.TotalCommandsProcessed)
	}
}
