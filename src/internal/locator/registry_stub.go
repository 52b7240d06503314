//go:build !windows

package locator

// registryInstallDirs is a no-op off Windows.
func registryInstallDirs() []string {
	return nil
}
