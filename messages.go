package gxbridge

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
	message.SetString(language.AmericanEnglish, "msg.listening", "Waiting for clients on %s")
	message.SetString(language.AmericanEnglish, "msg.listen_failed", "Listening on %s failed: %v")
	message.SetString(language.AmericanEnglish, "msg.listener_closed", "Listener on %s closed")
	message.SetString(language.AmericanEnglish, "msg.accept_failed", "Accepting a client failed: %v")
	message.SetString(language.AmericanEnglish, "msg.client_from", "Client from %s")
	message.SetString(language.AmericanEnglish, "msg.client_refused", "Client %s refused. Another client is connected.")

	// --- German (de) ---
	message.SetString(language.German, "msg.listening", "Warte auf Clients an %s")
	message.SetString(language.German, "msg.listen_failed", "Lauschen an %s fehlgeschlagen: %v")
	message.SetString(language.German, "msg.listener_closed", "Listener an %s geschlossen")
	message.SetString(language.German, "msg.accept_failed", "Annahme eines Clients fehlgeschlagen: %v")
	message.SetString(language.German, "msg.client_from", "Client von %s")
	message.SetString(language.German, "msg.client_refused", "Client %s abgewiesen. Ein anderer Client ist verbunden.")

	// --- Finnish (fi) ---
	message.SetString(language.Finnish, "msg.listening", "Odotetaan asiakkaita osoitteessa %s")
	message.SetString(language.Finnish, "msg.listen_failed", "Kuuntelu osoitteessa %s epäonnistui: %v")
	message.SetString(language.Finnish, "msg.listener_closed", "Kuuntelija osoitteessa %s suljettu")
	message.SetString(language.Finnish, "msg.accept_failed", "Asiakkaan hyväksyminen epäonnistui: %v")
	message.SetString(language.Finnish, "msg.client_from", "Asiakas osoitteesta %s")
	message.SetString(language.Finnish, "msg.client_refused", "Asiakas %s hylätty. Toinen asiakas on yhdistetty.")

	// --- Swedish (sv) ---
	message.SetString(language.Swedish, "msg.listening", "Väntar på klienter på %s")
	message.SetString(language.Swedish, "msg.listen_failed", "Lyssning på %s misslyckades: %v")
	message.SetString(language.Swedish, "msg.listener_closed", "Lyssnare på %s stängd")
	message.SetString(language.Swedish, "msg.accept_failed", "Att ta emot en klient misslyckades: %v")
	message.SetString(language.Swedish, "msg.client_from", "Klient från %s")
	message.SetString(language.Swedish, "msg.client_refused", "Klient %s avvisad. En annan klient är ansluten.")

	// --- Spanish (es) ---
	message.SetString(language.Spanish, "msg.listening", "Esperando clientes en %s")
	message.SetString(language.Spanish, "msg.listen_failed", "Error al escuchar en %s: %v")
	message.SetString(language.Spanish, "msg.listener_closed", "Escucha en %s cerrada")
	message.SetString(language.Spanish, "msg.accept_failed", "Error al aceptar un cliente: %v")
	message.SetString(language.Spanish, "msg.client_from", "Cliente desde %s")
	message.SetString(language.Spanish, "msg.client_refused", "Cliente %s rechazado. Otro cliente está conectado.")

	// --- Estonian (et) ---
	message.SetString(language.Estonian, "msg.listening", "Ootan kliente aadressil %s")
	message.SetString(language.Estonian, "msg.listen_failed", "Kuulamine aadressil %s ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.listener_closed", "Kuulaja aadressil %s suleti")
	message.SetString(language.Estonian, "msg.accept_failed", "Kliendi vastuvõtmine ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.client_from", "Klient aadressilt %s")
	message.SetString(language.Estonian, "msg.client_refused", "Klient %s lükati tagasi. Teine klient on ühendatud.")
}
