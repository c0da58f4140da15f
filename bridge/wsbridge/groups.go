package wsbridge

import (
	"context"

	"github.com/MoveIndustries/mini-app-sdk/bridge"
)

// Capability accessors. Each group is offered only when the handshake
// negotiated it; the group values are stateless views over the
// connection.

func (b *Bridge) Device() (bridge.DeviceOps, bool) {
	if !b.hasCapability(bridge.CapabilityDevice) {
		return nil, false
	}
	return deviceOps{b}, true
}

func (b *Bridge) Storage() (bridge.StorageOps, bool) {
	if !b.hasCapability(bridge.CapabilityStorage) {
		return nil, false
	}
	return storageOps{b: b, prefix: "storage"}, true
}

func (b *Bridge) CloudStorage() (bridge.StorageOps, bool) {
	if !b.hasCapability(bridge.CapabilityCloudStorage) {
		return nil, false
	}
	return storageOps{b: b, prefix: "cloudStorage"}, true
}

func (b *Bridge) Camera() (bridge.CameraOps, bool) {
	if !b.hasCapability(bridge.CapabilityCamera) {
		return nil, false
	}
	return cameraOps{b}, true
}

func (b *Bridge) Location() (bridge.LocationOps, bool) {
	if !b.hasCapability(bridge.CapabilityLocation) {
		return nil, false
	}
	return locationOps{b}, true
}

func (b *Bridge) Biometric() (bridge.BiometricOps, bool) {
	if !b.hasCapability(bridge.CapabilityBiometric) {
		return nil, false
	}
	return biometricOps{b}, true
}

func (b *Bridge) Clipboard() (bridge.ClipboardOps, bool) {
	if !b.hasCapability(bridge.CapabilityClipboard) {
		return nil, false
	}
	return clipboardOps{b}, true
}

func (b *Bridge) Dialogs() (bridge.DialogOps, bool) {
	if !b.hasCapability(bridge.CapabilityDialogs) {
		return nil, false
	}
	return dialogOps{b}, true
}

func (b *Bridge) Buttons() (bridge.ButtonOps, bool) {
	if !b.hasCapability(bridge.CapabilityButtons) {
		return nil, false
	}
	return buttonOps{b}, true
}

func (b *Bridge) Analytics() (bridge.AnalyticsOps, bool) {
	if !b.hasCapability(bridge.CapabilityAnalytics) {
		return nil, false
	}
	return analyticsOps{b}, true
}

type deviceOps struct{ b *Bridge }

func (d deviceOps) HapticFeedback(ctx context.Context, style string) error {
	return d.b.call(ctx, "device.hapticFeedback", map[string]string{"style": style}, nil)
}

func (d deviceOps) Notify(ctx context.Context, message string) error {
	return d.b.call(ctx, "device.notify", map[string]string{"message": message}, nil)
}

func (d deviceOps) Share(ctx context.Context, text, url string) error {
	return d.b.call(ctx, "device.share", map[string]string{"text": text, "url": url}, nil)
}

func (d deviceOps) OpenURL(ctx context.Context, url string) error {
	return d.b.call(ctx, "device.openURL", map[string]string{"url": url}, nil)
}

func (d deviceOps) Close(ctx context.Context) error {
	return d.b.call(ctx, "device.close", nil, nil)
}

// storageOps serves both device-local and host-synced storage; prefix
// selects the method family ("storage" or "cloudStorage").
type storageOps struct {
	b      *Bridge
	prefix string
}

func (s storageOps) Get(ctx context.Context, key string) (string, error) {
	var value string
	if err := s.b.call(ctx, s.prefix+".get", map[string]string{"key": key}, &value); err != nil {
		return "", err
	}
	return value, nil
}

func (s storageOps) Set(ctx context.Context, key, value string) error {
	return s.b.call(ctx, s.prefix+".set", map[string]string{"key": key, "value": value}, nil)
}

func (s storageOps) Remove(ctx context.Context, key string) error {
	return s.b.call(ctx, s.prefix+".remove", map[string]string{"key": key}, nil)
}

func (s storageOps) Clear(ctx context.Context) error {
	return s.b.call(ctx, s.prefix+".clear", nil, nil)
}

func (s storageOps) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := s.b.call(ctx, s.prefix+".keys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

type cameraOps struct{ b *Bridge }

func (c cameraOps) CapturePhoto(ctx context.Context) (string, error) {
	var dataURL string
	if err := c.b.call(ctx, "camera.capturePhoto", nil, &dataURL); err != nil {
		return "", err
	}
	return dataURL, nil
}

type locationOps struct{ b *Bridge }

func (l locationOps) CurrentLocation(ctx context.Context) (*bridge.Location, error) {
	var loc bridge.Location
	if err := l.b.call(ctx, "location.current", nil, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

type biometricOps struct{ b *Bridge }

func (o biometricOps) Authenticate(ctx context.Context, reason string) (bool, error) {
	var ok bool
	if err := o.b.call(ctx, "biometric.authenticate", map[string]string{"reason": reason}, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

type clipboardOps struct{ b *Bridge }

func (c clipboardOps) ReadText(ctx context.Context) (string, error) {
	var text string
	if err := c.b.call(ctx, "clipboard.readText", nil, &text); err != nil {
		return "", err
	}
	return text, nil
}

func (c clipboardOps) WriteText(ctx context.Context, text string) error {
	return c.b.call(ctx, "clipboard.writeText", map[string]string{"text": text}, nil)
}

type dialogOps struct{ b *Bridge }

func (d dialogOps) Alert(ctx context.Context, message string) error {
	return d.b.call(ctx, "dialogs.alert", map[string]string{"message": message}, nil)
}

func (d dialogOps) Confirm(ctx context.Context, message string) (bool, error) {
	var confirmed bool
	if err := d.b.call(ctx, "dialogs.confirm", map[string]string{"message": message}, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

func (d dialogOps) Popup(ctx context.Context, title, message string, buttons []bridge.ButtonOptions) (string, error) {
	params := map[string]interface{}{
		"title":   title,
		"message": message,
		"buttons": buttons,
	}
	var pressed string
	if err := d.b.call(ctx, "dialogs.popup", params, &pressed); err != nil {
		return "", err
	}
	return pressed, nil
}

type buttonOps struct{ b *Bridge }

func (o buttonOps) SetPrimaryButton(ctx context.Context, opts *bridge.ButtonOptions) error {
	return o.b.call(ctx, "buttons.setPrimary", opts, nil)
}

func (o buttonOps) SetSecondaryButton(ctx context.Context, opts *bridge.ButtonOptions) error {
	return o.b.call(ctx, "buttons.setSecondary", opts, nil)
}

func (o buttonOps) ShowBackButton(ctx context.Context, visible bool) error {
	return o.b.call(ctx, "buttons.showBack", map[string]bool{"visible": visible}, nil)
}

type analyticsOps struct{ b *Bridge }

func (a analyticsOps) Track(ctx context.Context, event string, props map[string]interface{}) error {
	params := map[string]interface{}{"event": event, "props": props}
	return a.b.call(ctx, "analytics.track", params, nil)
}

func (a analyticsOps) Identify(ctx context.Context, userID string, traits map[string]interface{}) error {
	params := map[string]interface{}{"user_id": userID, "traits": traits}
	return a.b.call(ctx, "analytics.identify", params, nil)
}

func (a analyticsOps) TrackScreen(ctx context.Context, name string) error {
	return a.b.call(ctx, "analytics.trackScreen", map[string]string{"name": name}, nil)
}

func (a analyticsOps) SetUserProperties(ctx context.Context, props map[string]interface{}) error {
	return a.b.call(ctx, "analytics.setUserProperties", props, nil)
}

func (a analyticsOps) Reset(ctx context.Context) error {
	return a.b.call(ctx, "analytics.reset", nil, nil)
}

func (a analyticsOps) Enabled(ctx context.Context) (bool, error) {
	var enabled bool
	if err := a.b.call(ctx, "analytics.isEnabled", nil, &enabled); err != nil {
		return false, err
	}
	return enabled, nil
}

func (a analyticsOps) OptOut(ctx context.Context) error {
	return a.b.call(ctx, "analytics.optOut", nil, nil)
}

func (a analyticsOps) OptIn(ctx context.Context) error {
	return a.b.call(ctx, "analytics.optIn", nil, nil)
}
