package miniapp

import (
	"github.com/MoveIndustries/mini-app-sdk/bridge"
	"github.com/MoveIndustries/mini-app-sdk/security"
)

// Optional capability groups. A host that did not negotiate a group
// yields a typed unsupported error instead of a silent no-op; check with
// security.IsUnsupported. The returned ops call the bridge directly:
// these operations move no assets and are not guarded.

// Device returns the device interaction group.
func (c *Client) Device() (bridge.DeviceOps, error) {
	if ops, ok := c.bridge.Device(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityDevice))
}

// Storage returns the device-local key-value storage group.
func (c *Client) Storage() (bridge.StorageOps, error) {
	if ops, ok := c.bridge.Storage(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityStorage))
}

// CloudStorage returns the host-synced key-value storage group.
func (c *Client) CloudStorage() (bridge.StorageOps, error) {
	if ops, ok := c.bridge.CloudStorage(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityCloudStorage))
}

// Camera returns the camera group.
func (c *Client) Camera() (bridge.CameraOps, error) {
	if ops, ok := c.bridge.Camera(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityCamera))
}

// Location returns the device location group.
func (c *Client) Location() (bridge.LocationOps, error) {
	if ops, ok := c.bridge.Location(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityLocation))
}

// Biometric returns the biometric authentication group.
func (c *Client) Biometric() (bridge.BiometricOps, error) {
	if ops, ok := c.bridge.Biometric(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityBiometric))
}

// Clipboard returns the clipboard group.
func (c *Client) Clipboard() (bridge.ClipboardOps, error) {
	if ops, ok := c.bridge.Clipboard(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityClipboard))
}

// Dialogs returns the host dialog group.
func (c *Client) Dialogs() (bridge.DialogOps, error) {
	if ops, ok := c.bridge.Dialogs(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityDialogs))
}

// Buttons returns the host chrome button group.
func (c *Client) Buttons() (bridge.ButtonOps, error) {
	if ops, ok := c.bridge.Buttons(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityButtons))
}

// Analytics returns the host analytics group.
func (c *Client) Analytics() (bridge.AnalyticsOps, error) {
	if ops, ok := c.bridge.Analytics(); ok {
		return ops, nil
	}
	return nil, security.NewUnsupportedError(string(bridge.CapabilityAnalytics))
}
