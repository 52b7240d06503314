//go:build windows

package locator

import (
	"golang.org/x/sys/windows/registry"
)

// registryKeys are the subtrees PHP installers are known to write an
// InstallDir value under.
var registryKeys = []struct {
	root registry.Key
	path string
}{
	{registry.LOCAL_MACHINE, `SOFTWARE\PHP`},
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\PHP`},
	{registry.CURRENT_USER, `SOFTWARE\PHP`},
}

// registryInstallDirs returns base paths registered by PHP installers.
// Every failure is treated as "nothing registered here"; a locked-down
// registry must not abort discovery.
func registryInstallDirs() []string {
	dirs := make([]string, 0)

	for _, loc := range registryKeys {
		key, err := registry.OpenKey(loc.root, loc.path, registry.QUERY_VALUE|registry.ENUMERATE_SUB_KEYS)
		if err != nil {
			continue
		}

		if dir, _, err := key.GetStringValue("InstallDir"); err == nil && dir != "" {
			dirs = append(dirs, dir)
		}

		// Versioned installs register under per-version subkeys.
		if names, err := key.ReadSubKeyNames(-1); err == nil {
			for _, name := range names {
				sub, err := registry.OpenKey(loc.root, loc.path+`\`+name, registry.QUERY_VALUE)
				if err != nil {
					continue
				}
				if dir, _, err := sub.GetStringValue("InstallDir"); err == nil && dir != "" {
					dirs = append(dirs, dir)
				}
				_ = sub.Close()
			}
		}

		_ = key.Close()
	}

	return dirs
}
