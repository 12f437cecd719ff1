// Package mem defines the packets that flow through the memory system and
// the protocols that memory components share.
package mem

import (
	"github.com/sarchlab/simplecache/sim/id"
	"github.com/sarchlab/simplecache/sim/modeling"
)

var accessReqByteOverhead = 12
var accessRspByteOverhead = 4

// AccessReq abstracts read and write requests that are sent to caches and
// memory controllers.
type AccessReq interface {
	modeling.Msg
	GetAddress() uint64
	GetByteSize() uint64

	// NeedsResponse is false for requests the receiver completes silently.
	NeedsResponse() bool
}

// An AccessRsp is a response in the memory system.
type AccessRsp interface {
	modeling.Rsp
}

// A ReadReq is a request sent to a memory controller to fetch data.
type ReadReq struct {
	modeling.MsgMeta

	Address        uint64
	AccessByteSize uint64
}

// Meta returns the message meta.
func (r *ReadReq) Meta() *modeling.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the request with a new ID.
func (r *ReadReq) Clone() modeling.Msg {
	c := *r
	c.ID = id.Generate()

	return &c
}

// GetByteSize returns the number of bytes that the request is accessing.
func (r *ReadReq) GetByteSize() uint64 {
	return r.AccessByteSize
}

// GetAddress returns the address that the request is accessing.
func (r *ReadReq) GetAddress() uint64 {
	return r.Address
}

// NeedsResponse returns true. Reads are always answered.
func (r *ReadReq) NeedsResponse() bool {
	return true
}

// ReadReqBuilder can build read requests.
type ReadReqBuilder struct {
	src, dst          modeling.RemotePort
	address, byteSize uint64
}

// WithSrc sets the source of the request to build.
func (b ReadReqBuilder) WithSrc(src modeling.RemotePort) ReadReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b ReadReqBuilder) WithDst(dst modeling.RemotePort) ReadReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request to build.
func (b ReadReqBuilder) WithAddress(address uint64) ReadReqBuilder {
	b.address = address
	return b
}

// WithByteSize sets the byte size of the request to build.
func (b ReadReqBuilder) WithByteSize(byteSize uint64) ReadReqBuilder {
	b.byteSize = byteSize
	return b
}

// Build creates a new ReadReq.
func (b ReadReqBuilder) Build() *ReadReq {
	r := &ReadReq{}
	r.ID = id.Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = accessReqByteOverhead
	r.Address = b.address
	r.AccessByteSize = b.byteSize

	return r
}

// A WriteReq is a request sent to a memory controller to write data.
type WriteReq struct {
	modeling.MsgMeta

	Address uint64
	Data    []byte
}

// Meta returns the meta data attached to a request.
func (r *WriteReq) Meta() *modeling.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the request with a new ID. The data is copied.
func (r *WriteReq) Clone() modeling.Msg {
	c := *r
	c.ID = id.Generate()
	c.Data = append([]byte(nil), r.Data...)

	return &c
}

// GetByteSize returns the number of bytes that the request is writing.
func (r *WriteReq) GetByteSize() uint64 {
	return uint64(len(r.Data))
}

// GetAddress returns the address that the request is accessing.
func (r *WriteReq) GetAddress() uint64 {
	return r.Address
}

// NeedsResponse returns true. The writer waits for a WriteDoneRsp.
func (r *WriteReq) NeedsResponse() bool {
	return true
}

// WriteReqBuilder can build write requests.
type WriteReqBuilder struct {
	src, dst modeling.RemotePort
	address  uint64
	data     []byte
}

// WithSrc sets the source of the request to build.
func (b WriteReqBuilder) WithSrc(src modeling.RemotePort) WriteReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b WriteReqBuilder) WithDst(dst modeling.RemotePort) WriteReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the address of the request to build.
func (b WriteReqBuilder) WithAddress(address uint64) WriteReqBuilder {
	b.address = address
	return b
}

// WithData sets the data of the request to build.
func (b WriteReqBuilder) WithData(data []byte) WriteReqBuilder {
	b.data = data
	return b
}

// Build creates a new WriteReq.
func (b WriteReqBuilder) Build() *WriteReq {
	r := &WriteReq{}
	r.ID = id.Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.Address = b.address
	r.Data = b.data
	r.TrafficBytes = len(r.Data) + accessReqByteOverhead

	return r
}

// A WritebackReq carries an evicted block to the next level. The receiver
// applies it and never responds.
type WritebackReq struct {
	modeling.MsgMeta

	Address uint64
	Data    []byte
}

// Meta returns the meta data attached to a request.
func (r *WritebackReq) Meta() *modeling.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the request with a new ID. The data is copied.
func (r *WritebackReq) Clone() modeling.Msg {
	c := *r
	c.ID = id.Generate()
	c.Data = append([]byte(nil), r.Data...)

	return &c
}

// GetByteSize returns the number of bytes written back.
func (r *WritebackReq) GetByteSize() uint64 {
	return uint64(len(r.Data))
}

// GetAddress returns the address of the block written back.
func (r *WritebackReq) GetAddress() uint64 {
	return r.Address
}

// NeedsResponse returns false.
func (r *WritebackReq) NeedsResponse() bool {
	return false
}

// WritebackReqBuilder can build write-back requests.
type WritebackReqBuilder struct {
	src, dst modeling.RemotePort
	address  uint64
	data     []byte
}

// WithSrc sets the source of the request to build.
func (b WritebackReqBuilder) WithSrc(
	src modeling.RemotePort,
) WritebackReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b WritebackReqBuilder) WithDst(
	dst modeling.RemotePort,
) WritebackReqBuilder {
	b.dst = dst
	return b
}

// WithAddress sets the block address of the request to build.
func (b WritebackReqBuilder) WithAddress(address uint64) WritebackReqBuilder {
	b.address = address
	return b
}

// WithData sets the block data of the request to build.
func (b WritebackReqBuilder) WithData(data []byte) WritebackReqBuilder {
	b.data = data
	return b
}

// Build creates a new WritebackReq.
func (b WritebackReqBuilder) Build() *WritebackReq {
	r := &WritebackReq{}
	r.ID = id.Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.Address = b.address
	r.Data = b.data
	r.TrafficBytes = len(r.Data) + accessReqByteOverhead

	return r
}

// A DataReadyRsp is the response sent from the lower module to the higher
// module that carries the data loaded.
type DataReadyRsp struct {
	modeling.MsgMeta

	RespondTo string
	Data      []byte
}

// Meta returns the meta data attached to each message.
func (r *DataReadyRsp) Meta() *modeling.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the response with a new ID.
func (r *DataReadyRsp) Clone() modeling.Msg {
	c := *r
	c.ID = id.Generate()
	c.Data = append([]byte(nil), r.Data...)

	return &c
}

// GetRspTo returns the ID of the request that the response replies.
func (r *DataReadyRsp) GetRspTo() string {
	return r.RespondTo
}

// DataReadyRspBuilder can build data ready responses.
type DataReadyRspBuilder struct {
	src, dst modeling.RemotePort
	rspTo    string
	data     []byte
}

// WithSrc sets the source of the response to build.
func (b DataReadyRspBuilder) WithSrc(
	src modeling.RemotePort,
) DataReadyRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b DataReadyRspBuilder) WithDst(
	dst modeling.RemotePort,
) DataReadyRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets ID of the request that the response replies.
func (b DataReadyRspBuilder) WithRspTo(id string) DataReadyRspBuilder {
	b.rspTo = id
	return b
}

// WithData sets the data of the response to build.
func (b DataReadyRspBuilder) WithData(data []byte) DataReadyRspBuilder {
	b.data = data
	return b
}

// Build creates a new DataReadyRsp.
func (b DataReadyRspBuilder) Build() *DataReadyRsp {
	r := &DataReadyRsp{}
	r.ID = id.Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = len(b.data) + accessRspByteOverhead
	r.RespondTo = b.rspTo
	r.Data = b.data

	return r
}

// A WriteDoneRsp is a response sent from the lower module to the higher
// module to mark a previous write as completed.
type WriteDoneRsp struct {
	modeling.MsgMeta

	RespondTo string
}

// Meta returns the meta data associated with the message.
func (r *WriteDoneRsp) Meta() *modeling.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a copy of the response with a new ID.
func (r *WriteDoneRsp) Clone() modeling.Msg {
	c := *r
	c.ID = id.Generate()

	return &c
}

// GetRspTo returns the ID of the request that the response replies.
func (r *WriteDoneRsp) GetRspTo() string {
	return r.RespondTo
}

// WriteDoneRspBuilder can build write done responses.
type WriteDoneRspBuilder struct {
	src, dst modeling.RemotePort
	rspTo    string
}

// WithSrc sets the source of the response to build.
func (b WriteDoneRspBuilder) WithSrc(
	src modeling.RemotePort,
) WriteDoneRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b WriteDoneRspBuilder) WithDst(
	dst modeling.RemotePort,
) WriteDoneRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets ID of the request that the response replies.
func (b WriteDoneRspBuilder) WithRspTo(id string) WriteDoneRspBuilder {
	b.rspTo = id
	return b
}

// Build creates a new WriteDoneRsp.
func (b WriteDoneRspBuilder) Build() *WriteDoneRsp {
	r := &WriteDoneRsp{}
	r.ID = id.Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.TrafficBytes = accessRspByteOverhead
	r.RespondTo = b.rspTo

	return r
}
