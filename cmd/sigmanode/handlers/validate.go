package handlers

import (
	"log"
)

// Validate handles the validate command. The handler configuration is only
// checked when configPath is set.
func Validate(nodePath, configPath string) error {
	def, err := loadNodeFile(nodePath)
	if err != nil {
		return err
	}
	if err := def.Resource.Check(); err != nil {
		return err
	}

	if configPath != "" {
		cfg, err := loadHandlerConfig(configPath)
		if err != nil {
			return err
		}
		log.Printf("Handler configuration %s is valid (%s)", configPath, cfg.DisplayName())
	}

	log.Printf("Node definition %s is valid", nodePath)
	printValue("Node", def.Name)
	return nil
}
