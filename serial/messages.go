package serial

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//nolint:errcheck
func init() {
	// --- English (default) ---
	message.SetString(language.AmericanEnglish, "msg.opening", "Opening %s")
	message.SetString(language.AmericanEnglish, "msg.opened", "%s opened")
	message.SetString(language.AmericanEnglish, "msg.open_failed", "Opening %s failed: %v")
	message.SetString(language.AmericanEnglish, "msg.read_failed", "Reading %s failed: %v")
	message.SetString(language.AmericanEnglish, "msg.port_not_open", "Serial port %s is not open")
	message.SetString(language.AmericanEnglish, "msg.closing_connection", "Closing connection to %s")
	message.SetString(language.AmericanEnglish, "msg.connection_closed", "Connection closed to %s")
	message.SetString(language.AmericanEnglish, "msg.no_serial_port_selected", "No serial port selected. Please select a serial port.")
	message.SetString(language.AmericanEnglish, "msg.invalid_data_bits", "Invalid data bits %d. Data bits must be 5..8.")
	message.SetString(language.AmericanEnglish, "msg.invalid_baud_rate", "Invalid baud rate %d.")

	// --- German (de) ---
	message.SetString(language.German, "msg.opening", "%s wird geöffnet")
	message.SetString(language.German, "msg.opened", "%s geöffnet")
	message.SetString(language.German, "msg.open_failed", "Öffnen von %s fehlgeschlagen: %v")
	message.SetString(language.German, "msg.read_failed", "Lesen von %s fehlgeschlagen: %v")
	message.SetString(language.German, "msg.port_not_open", "Serieller Port %s ist nicht geöffnet")
	message.SetString(language.German, "msg.closing_connection", "Verbindung zu %s: wird geschlossen")
	message.SetString(language.German, "msg.connection_closed", "Verbindung zu %s: wurde geschlossen")
	message.SetString(language.German, "msg.no_serial_port_selected", "Kein serieller Port ausgewählt. Bitte wählen Sie einen seriellen Port aus.")
	message.SetString(language.German, "msg.invalid_data_bits", "Ungültige Datenbits %d. Datenbits müssen 5..8 sein.")
	message.SetString(language.German, "msg.invalid_baud_rate", "Ungültige Baudrate %d.")

	// --- Finnish (fi) ---
	message.SetString(language.Finnish, "msg.opening", "Avataan %s")
	message.SetString(language.Finnish, "msg.opened", "%s avattu")
	message.SetString(language.Finnish, "msg.open_failed", "Portin %s avaaminen epäonnistui: %v")
	message.SetString(language.Finnish, "msg.read_failed", "Portin %s lukeminen epäonnistui: %v")
	message.SetString(language.Finnish, "msg.port_not_open", "Sarjaporttia %s ei ole avattu")
	message.SetString(language.Finnish, "msg.closing_connection", "Suljetaan yhteys kohteeseen %s:")
	message.SetString(language.Finnish, "msg.connection_closed", "Yhteys suljettu kohteeseen %s:")
	message.SetString(language.Finnish, "msg.no_serial_port_selected", "Sarjaporttia ei ole valittu. Valitse sarjaportti.")
	message.SetString(language.Finnish, "msg.invalid_data_bits", "Virheellinen databittien määrä %d. Sallitut arvot 5..8.")
	message.SetString(language.Finnish, "msg.invalid_baud_rate", "Virheellinen siirtonopeus %d.")

	// --- Swedish (sv) ---
	message.SetString(language.Swedish, "msg.opening", "Öppnar %s")
	message.SetString(language.Swedish, "msg.opened", "%s öppnad")
	message.SetString(language.Swedish, "msg.open_failed", "Att öppna %s misslyckades: %v")
	message.SetString(language.Swedish, "msg.read_failed", "Läsning från %s misslyckades: %v")
	message.SetString(language.Swedish, "msg.port_not_open", "Seriell port %s är inte öppen")
	message.SetString(language.Swedish, "msg.closing_connection", "Stänger anslutning till %s:")
	message.SetString(language.Swedish, "msg.connection_closed", "Anslutning stängd till %s:")
	message.SetString(language.Swedish, "msg.no_serial_port_selected", "Ingen seriell port vald. Välj en seriell port.")
	message.SetString(language.Swedish, "msg.invalid_data_bits", "Ogiltiga databitar %d. Databitar måste vara 5..8.")
	message.SetString(language.Swedish, "msg.invalid_baud_rate", "Ogiltig överföringshastighet %d.")

	// --- Spanish (es) ---
	message.SetString(language.Spanish, "msg.opening", "Abriendo %s")
	message.SetString(language.Spanish, "msg.opened", "%s abierto")
	message.SetString(language.Spanish, "msg.open_failed", "Error al abrir %s: %v")
	message.SetString(language.Spanish, "msg.read_failed", "Error al leer %s: %v")
	message.SetString(language.Spanish, "msg.port_not_open", "El puerto serie %s no está abierto")
	message.SetString(language.Spanish, "msg.closing_connection", "Cerrando conexión con %s:")
	message.SetString(language.Spanish, "msg.connection_closed", "Conexión cerrada con %s:")
	message.SetString(language.Spanish, "msg.no_serial_port_selected", "No se ha seleccionado ningún puerto serie. Seleccione un puerto serie.")
	message.SetString(language.Spanish, "msg.invalid_data_bits", "Bits de datos no válidos %d. Deben ser 5..8.")
	message.SetString(language.Spanish, "msg.invalid_baud_rate", "Velocidad en baudios no válida %d.")

	// --- Estonian (et) ---
	message.SetString(language.Estonian, "msg.opening", "Avan %s")
	message.SetString(language.Estonian, "msg.opened", "%s avatud")
	message.SetString(language.Estonian, "msg.open_failed", "Pordi %s avamine ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.read_failed", "Pordist %s lugemine ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.port_not_open", "Jadaport %s ei ole avatud")
	message.SetString(language.Estonian, "msg.closing_connection", "Suletakse ühendus sihtkohta %s:")
	message.SetString(language.Estonian, "msg.connection_closed", "Ühendus suleti sihtkohta %s:")
	message.SetString(language.Estonian, "msg.no_serial_port_selected", "Ühtegi jadaporti pole valitud. Palun valige jadaport.")
	message.SetString(language.Estonian, "msg.invalid_data_bits", "Vigane andmebittide arv %d. Lubatud on 5..8.")
	message.SetString(language.Estonian, "msg.invalid_baud_rate", "Vigane edastuskiirus %d.")
}
