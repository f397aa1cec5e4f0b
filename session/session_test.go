package session

import (
	"net"
	"testing"
	"time"

	"github.com/wfunc/monopoly/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	sent []uint16
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	m.sent = append(m.sent, msgID)
	return nil
}
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestManager_GetByGameID(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session1", &MockConnection{})
	sess1.Watch("game-a", "game-a-0")

	sess2 := NewSession("session2", &MockConnection{})
	sess2.Watch("game-b", "")

	sess3 := NewSession("session3", &MockConnection{})
	sess3.Watch("game-a", "")

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	if got := len(manager.GetByGameID("game-a")); got != 2 {
		t.Errorf("Expected 2 sessions watching game-a, got %d", got)
	}
	if got := len(manager.GetByGameID("game-b")); got != 1 {
		t.Errorf("Expected 1 session watching game-b, got %d", got)
	}
	if got := len(manager.GetByGameID("game-c")); got != 0 {
		t.Errorf("Expected 0 sessions watching game-c, got %d", got)
	}

	sess1.Watch("", "")
	if got := len(manager.GetByGameID("game-a")); got != 1 {
		t.Errorf("Expected 1 session after unwatching, got %d", got)
	}
}

func TestSession_Watch(t *testing.T) {
	sess := NewSession("test_session", &MockConnection{})
	sess.Watch("g1", "g1-0")

	if sess.GameID() != "g1" {
		t.Errorf("Expected game id g1, got %s", sess.GameID())
	}
	if sess.PlayerID() != "g1-0" {
		t.Errorf("Expected player id g1-0, got %s", sess.PlayerID())
	}
}

func TestSession_SendTouches(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("test_session", conn)
	before := sess.LastActive()
	time.Sleep(time.Millisecond)

	if err := sess.Send(network.MsgTypeGameSync, []byte("{}")); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}

	if !sess.LastActive().After(before) {
		t.Error("Expected Send to refresh LastActive")
	}
	if len(conn.sent) != 1 || conn.sent[0] != network.MsgTypeGameSync {
		t.Errorf("Expected one sync packet, got %v", conn.sent)
	}
}
