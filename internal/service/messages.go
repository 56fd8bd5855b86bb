package service

import (
	"fmt"
	"strings"

	"TimerBot/internal/model"
	"TimerBot/utils"
)

// 面向员工的西语文案。这些文本是产品的一部分，改动需要和运营确认。

const msgLocationError = "❌ Error: No pude obtener tu ubicación.\n" +
	"Por favor envía tu ubicación actual de nuevo."

const msgLocationNotFound = "❌ Error: No encontré tu ubicación.\n" +
	"Por favor envía tu ubicación actual de nuevo."

const msgGatewayFailure = "❌ Error al procesar tu solicitud.\n" +
	"Por favor intenta de nuevo en unos momentos."

const msgFallbackInstructions = "No entendí tu mensaje.\n" +
	"\n" +
	"Para marcar asistencia, envía tu *ubicación actual*.\n" +
	"\n" +
	"📍 Toca el ícono + → Ubicación → Enviar mi ubicación actual\n" +
	"\n" +
	"Si necesitas ayuda, contacta a tu empleador."

// renderPinnedRejection 固定位置被拒时的提示，展示被拒的点并教用户怎么发实时位置
func renderPinnedRejection(placeName, address string) string {
	if placeName == "" {
		placeName = "Punto guardado"
	}
	if address == "" {
		address = "Dirección no disponible"
	}

	lines := []string{
		"⚠️ *UBICACIÓN NO VÁLIDA*",
		"",
		"❌ Me estás enviando una ubicación guardada del mapa.",
		"",
		"No puedo verificar que realmente estés en el lugar.",
		"",
		"📍 *Ubicación rechazada:*",
		placeName,
		address,
		"",
		"💡 *Para registrar tu asistencia:*",
		"1️⃣ Toca el ícono de adjuntar (+)",
		"2️⃣ Selecciona \"Ubicación\"",
		"3️⃣ Elige \"Enviar mi ubicación actual\"",
		"",
		"¡Inténtalo de nuevo! 🙏",
	}

	return strings.Join(lines, "\n")
}

// renderRejected 网关业务拒绝：原样转发网关的理由
func renderRejected(gatewayMessage string) string {
	return fmt.Sprintf("❌ %s\n\nSi crees que esto es un error, contacta a tu empleador.", gatewayMessage)
}

// renderAccepted 打卡成功的结果渲染
func renderAccepted(result *model.ValidationResult) string {
	lines := []string{result.Message, ""}

	if result.BranchName != "" {
		lines = append(lines, fmt.Sprintf("📍 *Sucursal:* %s", result.BranchName))
	}
	if formatted := utils.FormatCheckTime(result.Time, result.Timezone); formatted != "" {
		lines = append(lines, fmt.Sprintf("🕐 *Hora:* %s", formatted))
	}
	if worked := result.WorkedDuration(); worked != "" {
		lines = append(lines, fmt.Sprintf("⏱️ *Horas trabajadas:* %s", worked))
	}

	lines = append(lines, "", "¡Que tengas un excelente día! 🎉")

	return strings.Join(lines, "\n")
}
