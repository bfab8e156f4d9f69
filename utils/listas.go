package utils

import "strings"

// CargarLista parsea una variable de entorno con valores separados por coma
// ("jpg,jpeg,png,gif"). Si viene vacía devuelve el default.
func CargarLista(valor string, porDefecto []string) []string {
	if strings.TrimSpace(valor) == "" {
		return porDefecto
	}
	partes := strings.Split(valor, ",")
	result := make([]string, 0, len(partes))
	for _, p := range partes {
		if v := strings.ToLower(strings.TrimSpace(p)); v != "" {
			result = append(result, v)
		}
	}
	return result
}

// CargarMapa parsea pares clave:valor separados por coma
// ("bcs:Bolsa de Comercio,bec:Bolsa Electrónica"). Claves en minúscula.
func CargarMapa(valor string) map[string]string {
	if valor == "" {
		return map[string]string{}
	}

	result := make(map[string]string)
	pairs := strings.Split(valor, ",")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) == 2 {
			key := strings.ToLower(strings.TrimSpace(parts[0]))
			value := strings.TrimSpace(parts[1])
			result[key] = value
		}
	}
	return result
}
