// Package modbus reads one gauge value from a Modbus TCP holding or input
// register block.
package modbus

import (
	"context"
	"encoding/binary"
	"math"
	"strings"
	"sync"
	"time"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"github.com/goburrow/modbus"
)

const (
	ErrEndpoint    = errors.ErrorCode("modbus_endpoint_required")
	ErrConnect     = errors.ErrorCode("modbus_connect_failed")
	ErrRead        = errors.ErrorCode("modbus_read_failed")
	ErrFC          = errors.ErrorCode("modbus_unsupported_fc")
	ErrDataType    = errors.ErrorCode("modbus_unsupported_data_type")
	ErrShortResult = errors.ErrorCode("modbus_short_result")
)

// Client is the subset of the goburrow client used here.
type Client interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error) // FC 3
	ReadInputRegisters(address, quantity uint16) ([]byte, error)   // FC 4
}

// Dialer opens a client and returns the function that closes it.
type Dialer func(cfg Config) (Client, func() error, error)

type Config struct {
	Endpoint  string
	UnitID    uint8
	FC        uint8
	Address   uint16
	DataType  string // uint16, int16, uint32, int32, float32
	WordOrder string // big (high word first) or little
	Scale     float64
	Offset    float64
	Timeout   time.Duration
}

// Reader polls one value. The connection is opened on first use and
// dropped after a failed read; the next Read dials again.
type Reader struct {
	cfg  Config
	dial Dialer

	mu     sync.Mutex
	client Client
	closer func() error
}

// New returns a Reader that dials cfg.Endpoint over TCP.
func New(cfg Config) (*Reader, error) {
	return NewWithDialer(cfg, DialTCP)
}

// NewWithDialer returns a Reader using dial to open connections.
func NewWithDialer(cfg Config, dial Dialer) (*Reader, error) {
	errorFactory := errors.New()
	if cfg.Endpoint == "" {
		return nil, errorFactory.New(ErrEndpoint)
	}
	if cfg.FC == 0 {
		cfg.FC = 3
	}
	if cfg.FC != 3 && cfg.FC != 4 {
		return nil, errorFactory.WithData(ErrFC, cfg.FC)
	}
	if cfg.DataType == "" {
		cfg.DataType = "uint16"
	}
	if Registers(cfg.DataType) == 0 {
		return nil, errorFactory.WithData(ErrDataType, cfg.DataType)
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	return &Reader{cfg: cfg, dial: dial}, nil
}

// DialTCP connects a goburrow TCP handler.
func DialTCP(cfg Config) (Client, func() error, error) {
	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, nil, errors.New().Wrap(ErrConnect, err).WithData(cfg.Endpoint)
	}
	return modbus.NewClient(h), h.Close, nil
}

// Read fetches and decodes the configured register block.
func (r *Reader) Read(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		client, closer, err := r.dial(r.cfg)
		if err != nil {
			return 0, err
		}
		r.client, r.closer = client, closer
	}

	qty := Registers(r.cfg.DataType)
	var (
		raw []byte
		err error
	)
	switch r.cfg.FC {
	case 4:
		raw, err = r.client.ReadInputRegisters(r.cfg.Address, qty)
	default:
		raw, err = r.client.ReadHoldingRegisters(r.cfg.Address, qty)
	}
	if err != nil {
		r.drop()
		return 0, errors.New().Wrap(ErrRead, err).WithData(r.cfg.Endpoint)
	}

	v, err := Decode(raw, r.cfg.DataType, r.cfg.WordOrder)
	if err != nil {
		return 0, err
	}
	return v*r.cfg.Scale + r.cfg.Offset, nil
}

// Close drops the connection, if any.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drop()
}

func (r *Reader) drop() error {
	closer := r.closer
	r.client, r.closer = nil, nil
	if closer == nil {
		return nil
	}
	return closer()
}

// Registers is the number of 16-bit registers dataType spans, or 0 when
// the type is unsupported.
func Registers(dataType string) uint16 {
	switch strings.ToLower(dataType) {
	case "uint16", "int16":
		return 1
	case "uint32", "int32", "float32":
		return 2
	default:
		return 0
	}
}

// Decode interprets big-endian register bytes. wordOrder "little" swaps
// the two registers of a 32-bit value.
func Decode(raw []byte, dataType, wordOrder string) (float64, error) {
	errorFactory := errors.New()

	n := int(Registers(dataType)) * 2
	if n == 0 {
		return 0, errorFactory.WithData(ErrDataType, dataType)
	}
	if len(raw) < n {
		return 0, errorFactory.WithData(ErrShortResult, len(raw))
	}

	b := raw[:n]
	if n == 4 && strings.EqualFold(wordOrder, "little") {
		b = []byte{raw[2], raw[3], raw[0], raw[1]}
	}

	switch strings.ToLower(dataType) {
	case "uint16":
		return float64(binary.BigEndian.Uint16(b)), nil
	case "int16":
		return float64(int16(binary.BigEndian.Uint16(b))), nil
	case "uint32":
		return float64(binary.BigEndian.Uint32(b)), nil
	case "int32":
		return float64(int32(binary.BigEndian.Uint32(b))), nil
	default:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(b))), nil
	}
}
