// Package telemetry writes HCI session activity to InfluxDB, the same
// time-series sink the teacher's scan loop already writes RSSI samples
// to.
package telemetry

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/sirupsen/logrus"

	"github.com/ridgeline-systems/blehci/hci"
)

var log = logrus.WithField("component", "telemetry")

// Recorder writes HCI session counters and advertising samples as
// InfluxDB points. Every write is synchronous (WriteAPIBlocking), same
// as the teacher's radioAPI, since a dropped counter on a demo daemon
// is worse than the extra latency of waiting for the write.
type Recorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	host     string
}

// NewRecorder opens an InfluxDB client against url, authenticated with
// token, writing into org/bucket. host tags every point, identifying
// which machine's Controller produced it.
func NewRecorder(url, token, org, bucket, host string) *Recorder {
	client := influxdb2.NewClient(url, token)
	return &Recorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		host:     host,
	}
}

// CommandSent records that a command with the given opcode was issued.
func (r *Recorder) CommandSent(ctx context.Context, opcode hci.OpCode) {
	r.write(ctx, "hci_command", map[string]string{"opcode": opcode.String(), "host": r.host}, map[string]interface{}{"count": 1})
}

// CommandTimedOut records a command that never received its
// Command_Complete/Command_Status within the session's timeout.
func (r *Recorder) CommandTimedOut(ctx context.Context, opcode hci.OpCode) {
	r.write(ctx, "hci_command_timeout", map[string]string{"opcode": opcode.String(), "host": r.host}, map[string]interface{}{"count": 1})
}

// CreditStalled records that a command had to wait for Controller
// flow-control credit before it could be sent.
func (r *Recorder) CreditStalled(ctx context.Context, opcode hci.OpCode) {
	r.write(ctx, "hci_credit_stall", map[string]string{"opcode": opcode.String(), "host": r.host}, map[string]interface{}{"count": 1})
}

// AdvertisingReport records one LE Advertising Report's RSSI, matching
// the teacher's per-scan "strength" point but keyed on the specific
// address rather than a single rolling "last" field. addr is a
// display-formatted peer address; advertising reports carry a
// ConnectionPeerAddress rather than a resolved DeviceAddress, so the
// caller formats it rather than this package assuming one address
// family.
func (r *Recorder) AdvertisingReport(ctx context.Context, addr string, rssi hci.Rssi) {
	r.write(ctx, "ble_advertising_report",
		map[string]string{"address": addr, "host": r.host},
		map[string]interface{}{"rssi": rssi.Value()})
}

// ConnectionComplete records a successful LE Connection Complete,
// tagging the resulting handle for correlation with later disconnects.
func (r *Recorder) ConnectionComplete(ctx context.Context, addr hci.DeviceAddress, handle hci.ConnectionHandle) {
	r.write(ctx, "ble_connection_complete",
		map[string]string{"address": addr.String(), "host": r.host},
		map[string]interface{}{"handle": handle.Value()})
}

func (r *Recorder) write(ctx context.Context, measurement string, tags map[string]string, fields map[string]interface{}) {
	point := influxdb2.NewPoint(measurement, tags, fields, time.Now())
	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		log.WithError(err).WithField("measurement", measurement).Warn("failed to write telemetry point")
	}
}

// Close flushes and releases the InfluxDB client.
func (r *Recorder) Close() {
	r.client.Close()
}
