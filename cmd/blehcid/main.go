// Command blehcid is a thin demo daemon: it brings a Controller up over
// either a serial or USB transport, enables LE scanning, and records
// every advertising report it sees to Redis (devicecache) and InfluxDB
// (telemetry), the same two sinks the teacher's scanning loop wrote to.
// It is not a GAP/GATT host — see SPEC_FULL.md's Non-goals.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ridgeline-systems/blehci/config"
	"github.com/ridgeline-systems/blehci/devicecache"
	"github.com/ridgeline-systems/blehci/hci"
	"github.com/ridgeline-systems/blehci/session"
	"github.com/ridgeline-systems/blehci/telemetry"
	"github.com/ridgeline-systems/blehci/transport"
	"github.com/ridgeline-systems/blehci/transport/usb"
)

var log = logrus.WithField("component", "blehcid")

func main() {
	configPath := flag.String("config", "config.json", "path to the daemon's JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	must("load config", err)

	driver, closeDriver, err := openDriver(cfg)
	must("open transport", err)
	defer closeDriver()

	cache := devicecache.New(cfg.Redis.Addr, cfg.Redis.SeenTTL())
	defer cache.Close()

	recorder := telemetry.NewRecorder(cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket, hostname())
	defer recorder.Close()

	sess := session.New(driver,
		session.WithCommandTimeout(cfg.Session.CommandTimeout()),
		session.WithEventQueueCapacity(cfg.Session.EventQueueCapacity),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scanParams, err := hci.NewScanParameters(hci.ScanTypePassive, hci.DefaultScanInterval(), hci.DefaultScanWindow(), hci.OwnAddressTypePublic, hci.ScanningFilterPolicyBasicUnfiltered)
	must("build LE scan parameters", err)

	must("reset controller", sess.Reset(ctx))
	must("set LE scan parameters", sess.LeSetScanParameters(ctx, scanParams))
	must("enable LE scanning", sess.LeSetScanEnable(ctx, hci.ScanEnabled, hci.FilterDuplicatesDisabled))

	log.Info("scanning...")
	for ctx.Err() == nil {
		event, ok := sess.PopEvent()
		if !ok {
			time.Sleep(50 * time.Millisecond)
			continue
		}
		if event.Kind != hci.EventLeMeta || event.LeMeta.Kind != hci.LeMetaEventAdvertisingReport {
			continue
		}
		for _, report := range event.LeMeta.AdvertisingReports.Reports {
			handleAdvertisingReport(ctx, cache, recorder, report)
		}
	}

	_ = sess.LeSetScanEnable(context.Background(), hci.ScanDisabled, hci.FilterDuplicatesDisabled)
	log.Info("shutting down")
}

func handleAdvertisingReport(ctx context.Context, cache *devicecache.Cache, recorder *telemetry.Recorder, report hci.LeAdvertisingReport) {
	octets := report.Address.Octets()
	addrLabel := formatOctets(octets)

	if report.HasRssi {
		recorder.AdvertisingReport(ctx, addrLabel, report.Rssi)
	}

	addrType := report.Address.AddressType
	if addrType == hci.ConnectionPeerAddressTypeRandomDevice || addrType == hci.ConnectionPeerAddressTypeRandomIdentity {
		if _, err := cache.ClassifyRandomAddress(octets); err != nil {
			log.WithError(err).WithField("address", addrLabel).Warn("failed to classify random address")
		}
	}

	seen, err := cache.Seen(ctx, addrLabel)
	if err != nil {
		log.WithError(err).Warn("devicecache lookup failed")
		return
	}
	if !seen {
		log.WithField("address", addrLabel).Info("discovered new peer")
		if err := cache.MarkSeen(ctx, addrLabel, ""); err != nil {
			log.WithError(err).Warn("failed to mark peer seen")
		}
	}
}

func formatOctets(octets [6]byte) string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", octets[5], octets[4], octets[3], octets[2], octets[1], octets[0])
}

func openDriver(cfg *config.Config) (session.Driver, func(), error) {
	switch {
	case cfg.USB != nil:
		ep := usb.Endpoints{EventIn: cfg.USB.Endpoints.EventIn, AclIn: cfg.USB.Endpoints.AclIn, AclOut: cfg.USB.Endpoints.AclOut}
		driver, err := usb.Open(cfg.USB.VendorID, cfg.USB.ProductID, cfg.USB.Interface, ep)
		if err != nil {
			return nil, nil, err
		}
		return driver, func() { driver.Close() }, nil
	case cfg.Serial != nil:
		driver, err := transport.OpenSerial(cfg.Serial.Device, cfg.Serial.Baud, cfg.Serial.RTSCTS)
		if err != nil {
			return nil, nil, err
		}
		return driver, func() { driver.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("config names neither a serial nor a usb transport")
	}
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

func must(action string, err error) {
	if err != nil {
		log.WithError(err).Fatalf("failed to %s", action)
	}
}
