package storage

import "encoding/json"

func encodeConfig(cfg map[string]string) ([]byte, error) {
	if cfg == nil {
		cfg = map[string]string{}
	}
	return json.Marshal(cfg)
}

func decodeConfig(data []byte) (map[string]string, error) {
	var cfg map[string]string
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg) == 0 {
		return nil, nil
	}
	return cfg, nil
}
